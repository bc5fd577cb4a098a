package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/codegend/pkg/apperrors"
	"github.com/codeready-toolchain/codegend/pkg/audit"
	"github.com/codeready-toolchain/codegend/pkg/llm"
	"github.com/codeready-toolchain/codegend/pkg/llmconfig"
	"github.com/codeready-toolchain/codegend/pkg/models"
	"github.com/codeready-toolchain/codegend/pkg/pipeline"
	"github.com/codeready-toolchain/codegend/pkg/prompt"
)

type stubCompiler struct {
	compiled *prompt.Compiled
	err      error
}

func (s *stubCompiler) Compile(_ context.Context, _ models.Product, _ *models.Intent) (*prompt.Compiled, error) {
	return s.compiled, s.err
}

type stubResolver struct {
	resolved *llmconfig.Resolved
	err      error
}

func (s *stubResolver) Resolve(_ context.Context) (*llmconfig.Resolved, error) {
	return s.resolved, s.err
}

type stubBackend struct {
	output string
	err    error
}

func (b *stubBackend) Name() string                               { return "stub" }
func (b *stubBackend) Model() string                              { return "stub-model" }
func (b *stubBackend) HealthCheck(_ context.Context) error         { return nil }
func (b *stubBackend) Generate(_ context.Context, _ llm.Prompt) (string, error) {
	return b.output, b.err
}

type stubBackendFactory struct {
	backend llm.Backend
	err     error
}

func (f *stubBackendFactory) New(_ context.Context, _ llm.Spec) (llm.Backend, error) {
	return f.backend, f.err
}

type stubPipeline struct {
	result *pipeline.Result
	err    error
}

func (p *stubPipeline) Run(_ string, _ pipeline.Mode, _ *models.Intent) (*pipeline.Result, error) {
	return p.result, p.err
}

type stubAuditRecorder struct {
	entries []audit.Entry
}

func (r *stubAuditRecorder) Record(_ context.Context, e audit.Entry) {
	r.entries = append(r.entries, e)
}

func newTestRequest() models.GenerateRequest {
	return models.GenerateRequest{
		Product: models.ProductXFrame5UI,
		Input: models.InputKind{
			Kind: models.InputKindNaturalLanguage,
			NaturalLanguage: &models.NaturalLanguageInput{
				Description: "show a list of employees",
			},
		},
		Options: models.Options{StrictMode: false},
	}
}

func TestGenerationProcessorHappyPath(t *testing.T) {
	rec := &stubAuditRecorder{}
	p := &GenerationProcessor{
		compiler: &stubCompiler{compiled: &prompt.Compiled{
			SystemPrompt: "sys", UserPrompt: "usr", TemplateID: 7, TemplateVersion: 2,
		}},
		resolver: &stubResolver{resolved: &llmconfig.Resolved{
			Spec: llm.Spec{Provider: "ollama", Model: "llama3", Endpoint: "http://localhost:11434"},
		}},
		backends: &stubBackendFactory{backend: &stubBackend{output: "--- XML ---\n<screen/>\n--- JS ---\n"}},
		pipeline: &stubPipeline{result: &pipeline.Result{XML: "<screen/>", JavaScript: "", Warnings: nil}},
		audit:    rec,
		devModeFunc: func() bool { return false },
	}

	result, err := p.Process(context.Background(), newTestRequest())
	require.NoError(t, err)
	assert.Equal(t, "<screen/>", result.Artifacts["xml"])
	assert.Equal(t, "7", result.TemplateID)
	assert.Equal(t, 2, result.TemplateVersion)
	require.Len(t, rec.entries, 1)
	assert.Nil(t, rec.entries[0].Err)
}

func TestGenerationProcessorRedactsProviderIdentity(t *testing.T) {
	rec := &stubAuditRecorder{}
	p := &GenerationProcessor{
		compiler: &stubCompiler{compiled: &prompt.Compiled{SystemPrompt: "sys", UserPrompt: "usr"}},
		resolver: &stubResolver{resolved: &llmconfig.Resolved{
			Spec: llm.Spec{Provider: "anthropic", Model: "secret-model", Endpoint: "https://api.anthropic.com", APIKey: "sk-xyz"},
		}},
		backends: &stubBackendFactory{backend: &stubBackend{output: "raw"}},
		pipeline: &stubPipeline{result: &pipeline.Result{
			XML:        "<screen/> secret-model",
			JavaScript: "",
			Warnings:   []string{"warning mentions sk-xyz"},
		}},
		audit:       rec,
		devModeFunc: func() bool { return false },
	}

	result, err := p.Process(context.Background(), newTestRequest())
	require.NoError(t, err)
	assert.NotContains(t, result.Artifacts["xml"], "secret-model")
	assert.NotContains(t, result.Warnings[0], "sk-xyz")
}

func TestGenerationProcessorClassifiesLlmTimeoutAsUnavailable(t *testing.T) {
	rec := &stubAuditRecorder{}
	llmErr := &llm.LlmError{Kind: llm.LlmErrorTimeout, Reason: "deadline exceeded"}
	p := &GenerationProcessor{
		compiler:    &stubCompiler{compiled: &prompt.Compiled{}},
		resolver:    &stubResolver{resolved: &llmconfig.Resolved{Spec: llm.Spec{Provider: "ollama"}}},
		backends:    &stubBackendFactory{backend: &stubBackend{err: llmErr}},
		pipeline:    &stubPipeline{},
		audit:       rec,
		devModeFunc: func() bool { return false },
	}

	_, err := p.Process(context.Background(), newTestRequest())
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindLlmUnavailable, appErr.Kind)
}

func TestGenerationProcessorPropagatesPipelineError(t *testing.T) {
	rec := &stubAuditRecorder{}
	pipelineErr := apperrors.New(apperrors.KindMissingHandler, "missing handlers: fn_del")
	p := &GenerationProcessor{
		compiler:    &stubCompiler{compiled: &prompt.Compiled{}},
		resolver:    &stubResolver{resolved: &llmconfig.Resolved{Spec: llm.Spec{Provider: "ollama"}}},
		backends:    &stubBackendFactory{backend: &stubBackend{output: "raw"}},
		pipeline:    &stubPipeline{err: pipelineErr},
		audit:       rec,
		devModeFunc: func() bool { return false },
	}

	_, err := p.Process(context.Background(), newTestRequest())
	require.True(t, errors.Is(err, pipelineErr) || errors.As(err, new(*apperrors.Error)))
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindMissingHandler, appErr.Kind)
}
