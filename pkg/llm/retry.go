package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Retry configuration, mirroring the teacher's own MCP call-recovery
// constants (pkg/mcp/recovery.go): a single bounded retry after a short
// jittered backoff, not an unbounded or exponential scheme.
const (
	// MaxRetries is the number of retry attempts after the initial failure.
	MaxRetries = 1

	// RetryBackoffMin is the minimum jittered backoff between retries.
	RetryBackoffMin = 250 * time.Millisecond

	// RetryBackoffMax is the maximum jittered backoff between retries.
	RetryBackoffMax = 750 * time.Millisecond
)

// retryingBackend wraps a Backend so Generate retries a bounded number of
// times on a transient transport failure — spec §7 "Propagation": "the
// LLM call is retried up to a bounded number of times only on transient
// transport errors; BadResponse is not retried."
type retryingBackend struct {
	Backend
}

// Generate implements Backend. Only LlmErrorTimeout/LlmErrorTransport are
// retried; LlmErrorBadResponse, LlmErrorHttpStatus, and LlmErrorAuthMissing
// are never retried since a repeat call cannot fix them.
func (b *retryingBackend) Generate(ctx context.Context, prompt Prompt) (string, error) {
	text, err := b.Backend.Generate(ctx, prompt)

	for attempt := 0; err != nil && isRetryableErr(err) && attempt < MaxRetries; attempt++ {
		backoff := RetryBackoffMin + time.Duration(rand.Int64N(int64(RetryBackoffMax-RetryBackoffMin)))
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return "", ctx.Err()
		}

		text, err = b.Backend.Generate(ctx, prompt)
	}

	return text, err
}

// isRetryableErr reports whether err is a transient LlmError worth
// retrying. A non-LlmError (unexpected internal failure) is treated as
// not retryable.
func isRetryableErr(err error) bool {
	var llmErr *LlmError
	if !errors.As(err, &llmErr) {
		return false
	}
	switch llmErr.Kind {
	case LlmErrorTimeout, LlmErrorTransport:
		return true
	default:
		return false
	}
}
