package llm

import (
	"context"

	einoClaude "github.com/cloudwego/eino-ext/components/model/claude"
)

// NewAnthropicBackend constructs the Anthropic Messages API variant
// (x-api-key header). Grounded on the pack's heavy use of
// github.com/cloudwego/eino-ext/components/model/claude for exactly this
// provider shape.
func NewAnthropicBackend(ctx context.Context, spec Spec) (Backend, error) {
	if spec.APIKey == "" {
		return nil, newAuthMissingError("anthropic backend requires an API key")
	}

	maxTokens := 4096
	if spec.MaxTokens != nil {
		maxTokens = *spec.MaxTokens
	}

	cfg := &einoClaude.Config{
		APIKey:    spec.APIKey,
		Model:     spec.Model,
		MaxTokens: maxTokens,
	}
	if spec.Endpoint != "" {
		cfg.BaseURL = &spec.Endpoint
	}
	if spec.Temperature != nil {
		t := float32(*spec.Temperature)
		cfg.Temperature = &t
	}

	cm, err := einoClaude.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, newTransportError(err)
	}

	return &einoBackend{
		name:           "anthropic",
		model:          spec.Model,
		chatModel:      cm,
		timeoutSeconds: spec.TimeoutSeconds,
	}, nil
}
