package llm

import (
	"context"

	einoOpenAI "github.com/cloudwego/eino-ext/components/model/openai"
)

// newOpenAICompatibleBackend builds the shared OpenAI-compatible chat model
// used by every variant that speaks the OpenAI chat-completions wire
// format — LlamaCppServer, Vllm, OpenAICompatible, and Groq differ only in
// default endpoint and authentication requirements, per spec §4.4.
func newOpenAICompatibleBackend(ctx context.Context, name string, spec Spec) (Backend, error) {
	cfg := &einoOpenAI.ChatModelConfig{
		BaseURL: spec.Endpoint,
		Model:   spec.Model,
		APIKey:  spec.APIKey,
	}
	if spec.MaxTokens != nil {
		cfg.MaxTokens = spec.MaxTokens
	}
	if spec.Temperature != nil {
		t := float32(*spec.Temperature)
		cfg.Temperature = &t
	}

	cm, err := einoOpenAI.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, newTransportError(err)
	}

	return &einoBackend{
		name:           name,
		model:          spec.Model,
		chatModel:      cm,
		timeoutSeconds: spec.TimeoutSeconds,
	}, nil
}

// NewOpenAICompatibleBackend constructs the generic OpenAI-compatible
// variant (bearer auth header against an arbitrary endpoint).
func NewOpenAICompatibleBackend(ctx context.Context, spec Spec) (Backend, error) {
	if spec.APIKey == "" {
		return nil, newAuthMissingError("openai-compatible backend requires an API key")
	}
	return newOpenAICompatibleBackend(ctx, "openai-compatible", spec)
}

// NewGroqBackend constructs the Groq variant: OpenAI-compatible wire shape
// against Groq's endpoint.
func NewGroqBackend(ctx context.Context, spec Spec) (Backend, error) {
	if spec.APIKey == "" {
		return nil, newAuthMissingError("groq backend requires an API key")
	}
	if spec.Endpoint == "" {
		spec.Endpoint = "https://api.groq.com/openai/v1"
	}
	return newOpenAICompatibleBackend(ctx, "groq", spec)
}
