package llm

import (
	"context"
	"time"

	inferencev1 "github.com/codeready-toolchain/codegend/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// EmbeddedBackend calls a local inference sidecar over gRPC — the optional
// embedded variant named in spec §4.4. Grounded on the teacher's own
// pkg/llm/client.go and pkg/agent/llm_grpc.go, collapsed from their
// streaming shape to the single unary call this package's Backend
// contract needs.
type EmbeddedBackend struct {
	conn           *grpc.ClientConn
	client         inferencev1.InferenceServiceClient
	model          string
	timeoutSeconds int
}

// NewEmbeddedBackend dials the local inference sidecar. Uses insecure
// (plaintext) transport, matching the teacher's assumption that this
// service runs as a sidecar or on localhost.
func NewEmbeddedBackend(spec Spec) (*EmbeddedBackend, error) {
	conn, err := grpc.NewClient(spec.Endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, newTransportError(err)
	}
	return &EmbeddedBackend{
		conn:           conn,
		client:         inferencev1.NewInferenceServiceClient(conn),
		model:          spec.Model,
		timeoutSeconds: spec.TimeoutSeconds,
	}, nil
}

func (b *EmbeddedBackend) Name() string  { return "embedded" }
func (b *EmbeddedBackend) Model() string { return b.model }

// Close releases the gRPC connection.
func (b *EmbeddedBackend) Close() error {
	return b.conn.Close()
}

// Generate implements Backend.
func (b *EmbeddedBackend) Generate(ctx context.Context, prompt Prompt) (string, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	resp, err := b.client.Generate(ctx, &inferencev1.GenerateRequest{
		SystemPrompt: prompt.System,
		UserPrompt:   prompt.User,
		Model:        b.model,
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", newTimeoutError(err)
		}
		return "", newTransportError(err)
	}
	if resp.Content == "" {
		return "", newBadResponseError("empty completion")
	}
	return resp.Content, nil
}

// HealthCheck implements Backend.
func (b *EmbeddedBackend) HealthCheck(ctx context.Context) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	resp, err := b.client.HealthCheck(ctx, &inferencev1.HealthCheckRequest{})
	if err != nil {
		return newTransportError(err)
	}
	if !resp.Ok {
		return newBadResponseError("inference sidecar reported unhealthy")
	}
	return nil
}

func (b *EmbeddedBackend) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeoutSeconds <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, time.Duration(b.timeoutSeconds)*time.Second)
}
