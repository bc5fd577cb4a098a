package llm

import (
	"context"

	"github.com/codeready-toolchain/codegend/pkg/apperrors"
)

// Provider identifiers, matching LlmConfig.provider.
const (
	ProviderOllama           = "ollama"
	ProviderLlamaCpp         = "llamacpp"
	ProviderVllm             = "vllm"
	ProviderOpenAICompatible = "openai-compatible"
	ProviderAnthropic        = "anthropic"
	ProviderGroq             = "groq"
	ProviderEmbedded         = "embedded"
)

// BackendFactory constructs the concrete Backend for a resolved LlmConfig,
// mirroring the teacher's config_resolver.go resolution pattern: the
// caller resolves which provider is active, this factory turns that
// selection into a live capability.
type BackendFactory struct{}

// NewBackendFactory constructs a BackendFactory.
func NewBackendFactory() *BackendFactory {
	return &BackendFactory{}
}

// New builds the Backend for spec.Provider, wrapped in the bounded retry
// decorator every variant gets (spec §7 "Propagation").
func (f *BackendFactory) New(ctx context.Context, spec Spec) (Backend, error) {
	backend, err := f.newBackend(ctx, spec)
	if err != nil {
		return nil, err
	}
	return &retryingBackend{Backend: backend}, nil
}

func (f *BackendFactory) newBackend(ctx context.Context, spec Spec) (Backend, error) {
	switch spec.Provider {
	case ProviderOllama:
		return NewOllamaBackend(ctx, spec)
	case ProviderLlamaCpp:
		return NewLlamaCppBackend(ctx, spec)
	case ProviderVllm:
		return NewVllmBackend(ctx, spec)
	case ProviderOpenAICompatible:
		return NewOpenAICompatibleBackend(ctx, spec)
	case ProviderAnthropic:
		return NewAnthropicBackend(ctx, spec)
	case ProviderGroq:
		return NewGroqBackend(ctx, spec)
	case ProviderEmbedded:
		return NewEmbeddedBackend(spec)
	default:
		return nil, apperrors.New(apperrors.KindInternal, "unknown llm provider: "+spec.Provider)
	}
}
