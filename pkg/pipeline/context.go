// Package pipeline implements the deterministic post-processing pipeline
// (spec §4.5): six passes turning raw LLM output into a safe, minimal
// artifact set, run under one of three error-surfacing policies.
package pipeline

import "github.com/codeready-toolchain/codegend/pkg/models"

// Mode is the policy knob governing how a pass's Error outcome is
// surfaced. Strict halts the pipeline; Relaxed demotes repairable errors
// to warnings; Dev is fully permissive.
type Mode string

// Supported modes.
const (
	ModeStrict  Mode = "strict"
	ModeRelaxed Mode = "relaxed"
	ModeDev     Mode = "dev"
)

// ModeFromOptions derives the per-request Mode from options.strict_mode,
// unless devOverride forces Dev regardless — an operator-level escape
// hatch with no per-request equivalent, intended for local development.
func ModeFromOptions(strictMode bool, devOverride bool) Mode {
	if devOverride {
		return ModeDev
	}
	if strictMode {
		return ModeStrict
	}
	return ModeRelaxed
}

// GenerationContext carries the artifact under construction through every
// pass. Passes mutate XML/JavaScript/Warnings in place; Mode and Intent
// are read-only inputs.
type GenerationContext struct {
	RawOutput  string
	XML        string
	JavaScript string
	Warnings   []string
	Mode       Mode
	Intent     *models.Intent
}

func (c *GenerationContext) addWarning(msg string) {
	c.Warnings = append(c.Warnings, msg)
}
