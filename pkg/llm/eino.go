package llm

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// einoBackend adapts an eino model.BaseChatModel (the interface every
// eino-ext provider component implements) to this package's Backend
// contract. Every variant except the embedded gRPC one is built on top of
// an einoBackend — only the model construction differs per provider.
type einoBackend struct {
	name           string
	model          string
	chatModel      model.BaseChatModel
	timeoutSeconds int
}

func (b *einoBackend) Name() string  { return b.name }
func (b *einoBackend) Model() string { return b.model }

// Generate implements Backend.
func (b *einoBackend) Generate(ctx context.Context, prompt Prompt) (string, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	resp, err := b.chatModel.Generate(ctx, toMessages(prompt))
	if err != nil {
		return "", classifyGenerateErr(ctx, err)
	}
	if resp == nil || resp.Content == "" {
		return "", newBadResponseError("empty completion")
	}
	return resp.Content, nil
}

// HealthCheck implements Backend by sending the smallest possible prompt
// and requiring a non-error round trip.
func (b *einoBackend) HealthCheck(ctx context.Context) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	_, err := b.chatModel.Generate(ctx, []*schema.Message{
		{Role: schema.User, Content: "ping"},
	})
	if err != nil {
		return classifyGenerateErr(ctx, err)
	}
	return nil
}

func (b *einoBackend) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeoutSeconds <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, time.Duration(b.timeoutSeconds)*time.Second)
}

func toMessages(p Prompt) []*schema.Message {
	messages := make([]*schema.Message, 0, 2)
	if p.System != "" {
		messages = append(messages, &schema.Message{Role: schema.System, Content: p.System})
	}
	messages = append(messages, &schema.Message{Role: schema.User, Content: p.User})
	return messages
}

func classifyGenerateErr(ctx context.Context, err error) *LlmError {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return newTimeoutError(err)
	}
	var statusErr interface{ StatusCode() int }
	if errors.As(err, &statusErr) {
		return newHttpStatusError(statusErr.StatusCode(), err.Error())
	}
	return newTransportError(err)
}
