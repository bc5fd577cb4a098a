package llm

import (
	"context"

	einoOllama "github.com/cloudwego/eino-ext/components/model/ollama"
)

// NewOllamaBackend constructs the Ollama variant, using Ollama's native
// chat API (not its OpenAI-compatible shim) per spec §4.4's "Ollama
// (native JSON body)".
func NewOllamaBackend(ctx context.Context, spec Spec) (Backend, error) {
	conf := &einoOllama.ChatModelConfig{
		BaseURL: spec.Endpoint,
		Model:   spec.Model,
		Options: &einoOllama.Options{},
	}
	if spec.Temperature != nil {
		conf.Options.Temperature = float32(*spec.Temperature)
	}

	cm, err := einoOllama.NewChatModel(ctx, conf)
	if err != nil {
		return nil, newTransportError(err)
	}

	return &einoBackend{
		name:           "ollama",
		model:          spec.Model,
		chatModel:      cm,
		timeoutSeconds: spec.TimeoutSeconds,
	}, nil
}
