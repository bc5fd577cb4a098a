package queue

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/codeready-toolchain/codegend/pkg/apperrors"
	"github.com/codeready-toolchain/codegend/pkg/audit"
	"github.com/codeready-toolchain/codegend/pkg/intent"
	"github.com/codeready-toolchain/codegend/pkg/llm"
	"github.com/codeready-toolchain/codegend/pkg/llmconfig"
	"github.com/codeready-toolchain/codegend/pkg/models"
	"github.com/codeready-toolchain/codegend/pkg/pipeline"
	"github.com/codeready-toolchain/codegend/pkg/prompt"
)

// promptCompiler is the narrow slice of *prompt.Compiler this processor
// depends on, so tests can substitute a stub instead of standing up a real
// template/knowledge/company-rule lookup chain.
type promptCompiler interface {
	Compile(ctx context.Context, product models.Product, in *models.Intent) (*prompt.Compiled, error)
}

// configResolver is the narrow slice of *llmconfig.Resolver this processor
// depends on.
type configResolver interface {
	Resolve(ctx context.Context) (*llmconfig.Resolved, error)
}

// backendFactory is the narrow slice of *llm.BackendFactory this processor
// depends on.
type backendFactory interface {
	New(ctx context.Context, spec llm.Spec) (llm.Backend, error)
}

// pipelineRunner is the narrow slice of *pipeline.Pipeline this processor
// depends on.
type pipelineRunner interface {
	Run(rawOutput string, mode pipeline.Mode, in *models.Intent) (*pipeline.Result, error)
}

// auditRecorder is the narrow slice of *audit.Service this processor
// depends on.
type auditRecorder interface {
	Record(ctx context.Context, e audit.Entry)
}

// GenerationProcessor is the production Processor: it drives every
// generation request, synchronous or queued, through the full path named
// in spec §4.6 — Normalizer → Compiler → LLM → Pipeline → Audit.
type GenerationProcessor struct {
	compiler    promptCompiler
	resolver    configResolver
	backends    backendFactory
	pipeline    pipelineRunner
	audit       auditRecorder
	devModeFunc func() bool
}

// NewGenerationProcessor constructs a GenerationProcessor. devModeFunc is
// consulted once per request rather than captured at construction, so a
// config reload takes effect on the next job without restarting workers.
func NewGenerationProcessor(
	compiler *prompt.Compiler,
	resolver *llmconfig.Resolver,
	backends *llm.BackendFactory,
	pipe *pipeline.Pipeline,
	auditSvc *audit.Service,
	devModeFunc func() bool,
) *GenerationProcessor {
	return &GenerationProcessor{
		compiler:    compiler,
		resolver:    resolver,
		backends:    backends,
		pipeline:    pipe,
		audit:       auditSvc,
		devModeFunc: devModeFunc,
	}
}

// Process implements Processor.
func (p *GenerationProcessor) Process(ctx context.Context, req models.GenerateRequest) (*models.GenerateResult, error) {
	start := time.Now()

	in, err := intent.Normalize(req.Product, req.Input)
	if err != nil {
		return nil, p.fail(ctx, req, nil, start, err)
	}

	compiled, err := p.compiler.Compile(ctx, req.Product, in)
	if err != nil {
		return nil, p.fail(ctx, req, in, start, err)
	}

	resolved, err := p.resolver.Resolve(ctx)
	if err != nil {
		return nil, p.fail(ctx, req, in, start, err)
	}

	backend, err := p.backends.New(ctx, resolved.Spec)
	if err != nil {
		return nil, p.fail(ctx, req, in, start, apperrors.Wrap(apperrors.KindLlmUnavailable, "failed to construct llm backend", err))
	}

	rawOutput, err := backend.Generate(ctx, llm.Prompt{System: compiled.SystemPrompt, User: compiled.UserPrompt})
	if err != nil {
		return nil, p.fail(ctx, req, in, start, classifyLlmErr(err))
	}

	// Safe point (spec §5): a job cancelled while the LLM call was in
	// flight is observed here, before the pipeline does any work.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	mode := pipeline.ModeFromOptions(req.Options.StrictMode, p.devModeFunc())
	pipelineResult, err := p.pipeline.Run(rawOutput, mode, in)
	if err != nil {
		return nil, p.fail(ctx, req, in, start, err)
	}

	redactor := audit.NewRedactor(resolved.Spec.Provider, resolved.Spec.Model, resolved.Spec.Endpoint, resolved.Spec.APIKey)

	result := &models.GenerateResult{
		Artifacts: models.Artifacts{
			"xml":        redactor.Redact(pipelineResult.XML),
			"javascript": redactor.Redact(pipelineResult.JavaScript),
		},
		Warnings:        redactor.RedactAll(pipelineResult.Warnings),
		ElapsedMS:       time.Since(start).Milliseconds(),
		TemplateID:      strconv.Itoa(compiled.TemplateID),
		TemplateVersion: compiled.TemplateVersion,
	}

	p.audit.Record(ctx, audit.Entry{
		UserID:          req.UserID,
		Product:         req.Product,
		InputKind:       req.Input.Kind,
		Intent:          in,
		TemplateID:      intPtr(compiled.TemplateID),
		TemplateVersion: intPtr(compiled.TemplateVersion),
		Result:          result,
		ElapsedMS:       result.ElapsedMS,
	})

	return result, nil
}

// fail records a failed attempt to the audit trail and returns the
// classified error for the caller.
func (p *GenerationProcessor) fail(ctx context.Context, req models.GenerateRequest, in *models.Intent, start time.Time, err error) error {
	p.audit.Record(ctx, audit.Entry{
		UserID:    req.UserID,
		Product:   req.Product,
		InputKind: req.Input.Kind,
		Intent:    in,
		Err:       err,
		ElapsedMS: time.Since(start).Milliseconds(),
	})
	return err
}

// classifyLlmErr maps a *llm.LlmError to the engine-facing apperrors.Kind
// named in spec §7; a non-LlmError is treated as an opaque internal error.
func classifyLlmErr(err error) error {
	var llmErr *llm.LlmError
	if !errors.As(err, &llmErr) {
		return apperrors.Wrap(apperrors.KindInternal, "llm backend call failed", err)
	}

	switch llmErr.Kind {
	case llm.LlmErrorTimeout, llm.LlmErrorTransport:
		return apperrors.Wrap(apperrors.KindLlmUnavailable, "llm backend unreachable", llmErr)
	default:
		return apperrors.Wrap(apperrors.KindLlmBadResponse, "llm backend returned an unusable response", llmErr)
	}
}

func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
