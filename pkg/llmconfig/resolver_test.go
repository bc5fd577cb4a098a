package llmconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	row *Row
	err error
}

func (s *stubProvider) ActiveConfig(_ context.Context) (*Row, error) {
	return s.row, s.err
}

func TestResolverPrefersDatabaseRow(t *testing.T) {
	r := NewResolver(&stubProvider{row: &Row{
		Provider:       "anthropic",
		ModelName:      "test-model",
		TimeoutSeconds: 30,
	}})
	resolved, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceDatabase, resolved.Source)
	assert.Equal(t, "anthropic", resolved.Spec.Provider)
}

func TestResolverFallsBackToEnvironment(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("LLM_MODEL", "env-model")
	t.Setenv("LLM_ENDPOINT", "http://localhost:11434")

	r := NewResolver(&stubProvider{row: nil})
	resolved, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceEnvironment, resolved.Source)
	assert.Equal(t, "ollama", resolved.Spec.Provider)
	assert.Equal(t, "env-model", resolved.Spec.Model)
}

func TestResolverFailsWhenNeitherSourceIsConfigured(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_MODEL", "")

	r := NewResolver(&stubProvider{row: nil})
	_, err := r.Resolve(context.Background())
	require.Error(t, err)
}
