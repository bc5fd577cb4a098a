package models

// Language is the output language for generated comments/labels.
type Language string

// Supported languages.
const (
	LanguageKorean  Language = "ko"
	LanguageEnglish Language = "en"
)

// InputKind is the closed set of shapes a generation request's input can
// take. Exactly one field is populated, selected by Kind.
type InputKind struct {
	Kind InputKindTag `json:"kind"`

	Schema          *SchemaInput          `json:"schema,omitempty"`
	QuerySample     *QuerySampleInput     `json:"query_sample,omitempty"`
	NaturalLanguage *NaturalLanguageInput `json:"natural_language,omitempty"`
	CustomIntent    *Intent               `json:"custom_intent,omitempty"`
}

// InputKindTag discriminates the InputKind union.
type InputKindTag string

// Supported input kinds.
const (
	InputKindSchema          InputKindTag = "db-schema"
	InputKindQuerySample     InputKindTag = "query-sample"
	InputKindNaturalLanguage InputKindTag = "natural-language"
	InputKindCustomIntent    InputKindTag = "custom-intent"
)

// IsValid reports whether t is a known input kind tag.
func (t InputKindTag) IsValid() bool {
	switch t {
	case InputKindSchema, InputKindQuerySample, InputKindNaturalLanguage, InputKindCustomIntent:
		return true
	default:
		return false
	}
}

// SchemaInput describes a single DB table to scaffold a screen or backend from.
type SchemaInput struct {
	Table   string       `json:"table"`
	Columns []RawColumn  `json:"columns"`
	Keys    []string     `json:"keys"` // primary key column names
}

// RawColumn is a column as reported by the caller, before type inference.
type RawColumn struct {
	Name     string `json:"name"`
	TypeHint string `json:"type_hint"` // e.g. "varchar", "int", "timestamp"
}

// QuerySampleInput carries a representative SELECT statement the normalizer
// parses projections out of.
type QuerySampleInput struct {
	SQL         string `json:"sql"`
	Description string `json:"description,omitempty"`
}

// NaturalLanguageInput carries a free-text description of the desired screen
// or backend; the normalizer produces only a skeletal intent from it.
type NaturalLanguageInput struct {
	Description string `json:"description"`
}

// Options carries per-request behavior toggles.
type Options struct {
	Language   Language `json:"language"`
	StrictMode bool     `json:"strict_mode"`
}

// Context carries caller-supplied project placement metadata. It never
// participates in prompt content beyond the structured intent rendering.
type Context struct {
	Project string   `json:"project"`
	Target  string   `json:"target"` // "frontend" | "backend"
	Output  []string `json:"output"`
}

// GenerateRequest is the top-level request accepted by the generation engine.
type GenerateRequest struct {
	Product Product   `json:"product"`
	Input   InputKind `json:"input"`
	Options Options   `json:"options"`
	Context Context   `json:"context"`

	// UserID identifies the caller for audit purposes; may be empty.
	UserID string `json:"-"`
}

// Artifacts is the set of generated files keyed by artifact name
// ("xml", "javascript", "controller", "service", ...).
type Artifacts map[string]string

// GenerateResult is the outcome of a synchronous or completed asynchronous
// generation request.
type GenerateResult struct {
	Artifacts       Artifacts
	Warnings        []string
	ElapsedMS       int64
	TemplateID      string
	TemplateVersion int
}
