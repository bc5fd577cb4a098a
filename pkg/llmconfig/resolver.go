package llmconfig

import (
	"context"

	"github.com/codeready-toolchain/codegend/pkg/apperrors"
	"github.com/codeready-toolchain/codegend/pkg/llm"
)

// Resolver resolves the active LLM backend configuration: database row
// first, environment variables when no row is active.
type Resolver struct {
	provider Provider
}

// NewResolver constructs a Resolver.
func NewResolver(provider Provider) *Resolver {
	return &Resolver{provider: provider}
}

// Source names where a Resolved Spec came from.
const (
	SourceDatabase    = "database"
	SourceEnvironment = "environment"
)

// Resolved pairs the llm.Spec a Backend is built from with where it came
// from, for logging.
type Resolved struct {
	Spec   llm.Spec
	Source string
}

// Resolve implements the DB-first/env-fallback hierarchy named in
// spec §4.8.
func (r *Resolver) Resolve(ctx context.Context) (*Resolved, error) {
	row, err := r.provider.ActiveConfig(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to read active llm config", err)
	}

	source := SourceDatabase
	if row == nil {
		row = rowFromEnv()
		source = SourceEnvironment
	}

	if row.Provider == "" || row.ModelName == "" {
		return nil, apperrors.New(apperrors.KindLlmUnavailable, "no llm configuration is active and no environment fallback is set")
	}

	return &Resolved{
		Spec: llm.Spec{
			Provider:       row.Provider,
			Endpoint:       row.EndpointURL,
			Model:          row.ModelName,
			APIKey:         row.APIKey,
			TimeoutSeconds: row.TimeoutSeconds,
			MaxTokens:      row.MaxTokens,
			Temperature:    row.Temperature,
		},
		Source: source,
	}, nil
}
