package pipeline

import (
	"github.com/codeready-toolchain/codegend/pkg/apperrors"
	"github.com/codeready-toolchain/codegend/pkg/models"
)

// Result is the output of a full pipeline run: the pair of artifacts the
// generation request produces, plus any repair warnings accumulated
// along the way.
type Result struct {
	XML        string
	JavaScript string
	Warnings   []string
}

// passErrorKind maps a pass, identified by name, to the apperrors.Kind its
// Error outcome is surfaced as (spec §7).
var passErrorKind = map[string]apperrors.Kind{
	"output_parser":   apperrors.KindParseFailure,
	"symbol_linker":   apperrors.KindMissingHandler,
	"api_allowlist":   apperrors.KindForbiddenApi,
	"graph_validator": apperrors.KindSyntaxFailure,
}

// Pipeline runs the fixed, ordered sequence of post-processing passes
// over a raw LLM response.
type Pipeline struct {
	passes []Pass
}

// New constructs the pipeline with the six passes in their mandated
// order. Canonicalizer and Minimalism never produce an Error outcome;
// the remaining four do, each mapped via passErrorKind.
func New() *Pipeline {
	return &Pipeline{
		passes: []Pass{
			OutputParser{},
			Canonicalizer{},
			SymbolLinker{},
			APIAllowlist{},
			GraphValidator{},
			Minimalism{},
		},
	}
}

// Run executes every pass in order against a fresh GenerationContext
// seeded from rawOutput. A pass reporting Error halts the pipeline; its
// message is wrapped into the apperrors.Kind registered for that pass.
func (p *Pipeline) Run(rawOutput string, mode Mode, intent *models.Intent) (*Result, error) {
	ctx := &GenerationContext{
		RawOutput: rawOutput,
		Mode:      mode,
		Intent:    intent,
	}

	for _, pass := range p.passes {
		result := pass.Run(ctx)
		if result.Outcome != OutcomeError {
			continue
		}

		kind, ok := passErrorKind[pass.Name()]
		if !ok {
			kind = apperrors.KindInternal
		}
		return nil, apperrors.New(kind, result.Message)
	}

	return &Result{
		XML:        ctx.XML,
		JavaScript: ctx.JavaScript,
		Warnings:   ctx.Warnings,
	}, nil
}
