// Package llm provides the provider-polymorphic LLM backend capability
// (spec §4.4): a common Backend interface plus one concrete type per
// supported provider, selected at runtime by the active LlmConfig row.
package llm

import (
	"context"
	"fmt"
)

// Prompt is the compiled system/user pair a Backend sends to the provider.
type Prompt struct {
	System string
	User   string
}

// Backend is the capability every LLM provider variant implements. Methods
// never leak provider identity, model name, endpoint, or credentials to
// callers beyond the engine boundary — name() and model() exist for
// logging only.
type Backend interface {
	// Name identifies the provider variant (e.g. "ollama"). Logged, never
	// returned to external callers.
	Name() string

	// Model identifies the model in use. Logged, never returned to
	// external callers.
	Model() string

	// Generate completes prompt against the provider and returns the raw
	// text response, or an *LlmError on transport failure, timeout, or a
	// non-success response.
	Generate(ctx context.Context, prompt Prompt) (string, error)

	// HealthCheck reports whether the backend is currently reachable.
	HealthCheck(ctx context.Context) error
}

// LlmErrorKind is the closed set of LLM failure categories named in
// spec §4.4.
type LlmErrorKind string

// LlmError kinds.
const (
	LlmErrorTimeout     LlmErrorKind = "Timeout"
	LlmErrorTransport   LlmErrorKind = "Transport"
	LlmErrorHttpStatus  LlmErrorKind = "HttpStatus"
	LlmErrorBadResponse LlmErrorKind = "BadResponse"
	LlmErrorAuthMissing LlmErrorKind = "AuthMissing"
)

// LlmError is the typed error every Backend.Generate/HealthCheck failure is
// normalized into.
type LlmError struct {
	Kind       LlmErrorKind
	StatusCode int // populated only when Kind == LlmErrorHttpStatus
	Reason     string
	Cause      error
}

func (e *LlmError) Error() string {
	switch e.Kind {
	case LlmErrorHttpStatus:
		return fmt.Sprintf("llm: http status %d: %s", e.StatusCode, e.Reason)
	default:
		if e.Cause != nil {
			return fmt.Sprintf("llm: %s: %s: %v", e.Kind, e.Reason, e.Cause)
		}
		return fmt.Sprintf("llm: %s: %s", e.Kind, e.Reason)
	}
}

func (e *LlmError) Unwrap() error { return e.Cause }

func newTimeoutError(cause error) *LlmError {
	return &LlmError{Kind: LlmErrorTimeout, Reason: "request timed out", Cause: cause}
}

func newTransportError(cause error) *LlmError {
	return &LlmError{Kind: LlmErrorTransport, Reason: "transport failure", Cause: cause}
}

func newHttpStatusError(code int, body string) *LlmError {
	return &LlmError{Kind: LlmErrorHttpStatus, StatusCode: code, Reason: body}
}

func newBadResponseError(reason string) *LlmError {
	return &LlmError{Kind: LlmErrorBadResponse, Reason: reason}
}

func newAuthMissingError(reason string) *LlmError {
	return &LlmError{Kind: LlmErrorAuthMissing, Reason: reason}
}

// Spec parametrizes every variant constructor, per §4.4: "endpoint URL,
// model identifier, optional credential, and timeout." Provider selects
// the variant via BackendFactory; it is not used by the variant itself.
type Spec struct {
	Provider       string
	Endpoint       string
	Model          string
	APIKey         string // optional
	TimeoutSeconds int
	MaxTokens      *int
	Temperature    *float64
}
