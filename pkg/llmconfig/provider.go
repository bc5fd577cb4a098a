// Package llmconfig resolves which LLM backend configuration is active at
// generation time, per spec §4.8: "at each generation request the active
// LlmConfig row is read; if none is active, environment variables are
// used. This enables runtime switching without restart."
package llmconfig

import (
	"context"

	"github.com/codeready-toolchain/codegend/ent"
	"github.com/codeready-toolchain/codegend/ent/llmconfig"
)

// Row is the plain view of an active LlmConfig database row.
type Row struct {
	Name           string
	Provider       string
	ModelName      string
	EndpointURL    string
	APIKey         string
	TimeoutSeconds int
	MaxTokens      *int
	Temperature    *float64
}

// Provider resolves the single active LlmConfig row, if any.
type Provider interface {
	// ActiveConfig returns the active row, or nil if none is active.
	ActiveConfig(ctx context.Context) (*Row, error)
}

// EntProvider is the production Provider backed by the LlmConfig table.
type EntProvider struct {
	client *ent.Client
}

// NewEntProvider constructs an EntProvider.
func NewEntProvider(client *ent.Client) *EntProvider {
	return &EntProvider{client: client}
}

// ActiveConfig implements Provider. Uses First rather than Only: the
// at-most-one-active invariant is enforced at the write path (spec §4.8),
// so a lookup here tolerates a transient violation rather than failing
// generation outright.
func (p *EntProvider) ActiveConfig(ctx context.Context) (*Row, error) {
	row, err := p.client.LlmConfig.Query().
		Where(llmconfig.IsActiveEQ(true)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var temperature *float64
	if row.Temperature != nil {
		t := float64(*row.Temperature)
		temperature = &t
	}

	return &Row{
		Name:           row.Name,
		Provider:       row.Provider,
		ModelName:      row.ModelName,
		EndpointURL:    row.EndpointURL,
		APIKey:         row.APIKey,
		TimeoutSeconds: row.TimeoutSeconds,
		MaxTokens:      row.MaxTokens,
		Temperature:    temperature,
	}, nil
}
