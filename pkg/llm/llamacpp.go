package llm

import "context"

// NewLlamaCppBackend constructs the llama.cpp server variant. The
// llama.cpp server exposes an OpenAI-compatible completions endpoint, so
// this reuses the shared OpenAI-compatible chat model with no credential
// requirement — llama.cpp server deployments are typically unauthenticated
// localhost/sidecar processes.
func NewLlamaCppBackend(ctx context.Context, spec Spec) (Backend, error) {
	return newOpenAICompatibleBackend(ctx, "llamacpp", spec)
}
