package llm

import "context"

// NewVllmBackend constructs the vLLM variant. vLLM's OpenAI-compatible
// server mode is assumed (spec §4.4 lists it alongside the other
// HTTP/JSON variants); credentials are optional since vLLM deployments are
// commonly internal-network-only.
func NewVllmBackend(ctx context.Context, spec Spec) (Backend, error) {
	return newOpenAICompatibleBackend(ctx, "vllm", spec)
}
