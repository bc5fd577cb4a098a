package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend returns queued (text, err) pairs in order, one per call.
type stubBackend struct {
	calls   int
	results []stubResult
}

type stubResult struct {
	text string
	err  error
}

func (b *stubBackend) Name() string  { return "stub" }
func (b *stubBackend) Model() string { return "stub-model" }

func (b *stubBackend) Generate(_ context.Context, _ Prompt) (string, error) {
	r := b.results[b.calls]
	b.calls++
	return r.text, r.err
}

func (b *stubBackend) HealthCheck(context.Context) error { return nil }

func TestRetryingBackendRetriesTransportError(t *testing.T) {
	stub := &stubBackend{results: []stubResult{
		{err: &LlmError{Kind: LlmErrorTransport, Reason: "boom"}},
		{text: "ok after retry"},
	}}
	backend := &retryingBackend{Backend: stub}

	out, err := backend.Generate(context.Background(), Prompt{User: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok after retry", out)
	assert.Equal(t, 2, stub.calls)
}

func TestRetryingBackendRetriesTimeoutError(t *testing.T) {
	stub := &stubBackend{results: []stubResult{
		{err: &LlmError{Kind: LlmErrorTimeout, Reason: "timed out"}},
		{text: "ok after retry"},
	}}
	backend := &retryingBackend{Backend: stub}

	out, err := backend.Generate(context.Background(), Prompt{User: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok after retry", out)
	assert.Equal(t, 2, stub.calls)
}

func TestRetryingBackendNeverRetriesBadResponse(t *testing.T) {
	stub := &stubBackend{results: []stubResult{
		{err: &LlmError{Kind: LlmErrorBadResponse, Reason: "malformed"}},
		{text: "should never be reached"},
	}}
	backend := &retryingBackend{Backend: stub}

	_, err := backend.Generate(context.Background(), Prompt{User: "hi"})
	require.Error(t, err)
	assert.Equal(t, 1, stub.calls)

	var llmErr *LlmError
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, LlmErrorBadResponse, llmErr.Kind)
}

func TestRetryingBackendStopsAtMaxRetries(t *testing.T) {
	stub := &stubBackend{results: []stubResult{
		{err: &LlmError{Kind: LlmErrorTransport, Reason: "boom 1"}},
		{err: &LlmError{Kind: LlmErrorTransport, Reason: "boom 2"}},
		{text: "never reached"},
	}}
	backend := &retryingBackend{Backend: stub}

	_, err := backend.Generate(context.Background(), Prompt{User: "hi"})
	require.Error(t, err)
	assert.Equal(t, MaxRetries+1, stub.calls)
}

func TestRetryingBackendAbortsOnContextCancellation(t *testing.T) {
	stub := &stubBackend{results: []stubResult{
		{err: &LlmError{Kind: LlmErrorTransport, Reason: "boom"}},
	}}
	backend := &retryingBackend{Backend: stub}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := backend.Generate(ctx, Prompt{User: "hi"})
	require.Error(t, err)
	assert.Equal(t, 1, stub.calls)
}
