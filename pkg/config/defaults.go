package config

// Defaults contains system-wide defaults loaded from configuration.
type Defaults struct {
	// Language is a configured default language. No request path reads it;
	// a request that omits Options.Language keeps an empty value.
	Language string `yaml:"language,omitempty"`

	// StrictMode is a configured default strictness. No request path reads
	// it; a request that omits Options.StrictMode runs with false (Relaxed).
	StrictMode bool `yaml:"strict_mode,omitempty"`

	// KnowledgeTokenBudget is the default per-request token budget used by
	// the knowledge selector (spec §4.2 step 4).
	KnowledgeTokenBudget int `yaml:"knowledge_token_budget,omitempty"`

	// PipelineDevMode forces every request through pipeline.ModeDev
	// regardless of Options.StrictMode. An operator-level escape hatch for
	// local development, never settable from a request body (spec §4.5
	// names Strict/Relaxed/Dev but derives only the first two from the
	// per-request boolean).
	PipelineDevMode bool `yaml:"pipeline_dev_mode,omitempty"`
}

// DefaultDefaults returns the built-in system defaults.
func DefaultDefaults() *Defaults {
	return &Defaults{
		Language:             "en",
		StrictMode:           true,
		KnowledgeTokenBudget: 3000,
		PipelineDevMode:      false,
	}
}
