// Package audit implements the generation audit trail (spec §4.7): writing
// GenerationLog rows that never carry the raw input payload, and scrubbing
// any provider-identifying detail out of responses before they reach an
// external caller (spec §8's scan-based non-leakage property).
package audit

import (
	"regexp"
	"strings"
)

// CompiledPattern is one compiled redaction rule: every match of Regex in
// a string is replaced with Replacement. Mirrors the compiled-pattern
// shape the teacher's masking service builds at startup, simplified to a
// closed set since this redactor's job is narrow (provider identity, not
// arbitrary secret scanning).
type CompiledPattern struct {
	Name        string
	Regex       *regexp.Regexp
	Replacement string
}

// Redactor strips provider/model/endpoint/API-key identifying detail from
// text before it is returned to an external caller or persisted. Patterns
// are compiled once at construction, not per call.
type Redactor struct {
	patterns []*CompiledPattern
}

// NewRedactor compiles a Redactor that scrubs the given provider name,
// model name, endpoint URL, and API key wherever they appear verbatim.
// Any of the four may be empty, in which case that pattern is skipped.
func NewRedactor(provider, model, endpoint, apiKey string) *Redactor {
	r := &Redactor{}
	r.addLiteral("provider", provider, "[redacted-provider]")
	r.addLiteral("model", model, "[redacted-model]")
	r.addLiteral("endpoint", endpoint, "[redacted-endpoint]")
	r.addLiteral("api_key", apiKey, "[redacted-credential]")
	return r
}

func (r *Redactor) addLiteral(name, literal, replacement string) {
	if strings.TrimSpace(literal) == "" {
		return
	}
	r.patterns = append(r.patterns, &CompiledPattern{
		Name:        name,
		Regex:       regexp.MustCompile(regexp.QuoteMeta(literal)),
		Replacement: replacement,
	})
}

// Redact applies every compiled pattern to text in turn, failing closed:
// an empty input returns empty, never an error.
func (r *Redactor) Redact(text string) string {
	if text == "" {
		return text
	}
	for _, p := range r.patterns {
		text = p.Regex.ReplaceAllString(text, p.Replacement)
	}
	return text
}

// RedactAll applies Redact to every string in warnings, preserving order.
func (r *Redactor) RedactAll(warnings []string) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = r.Redact(w)
	}
	return out
}
