package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LlmConfig holds the schema definition for the LlmConfig entity.
//
// Invariant (spec §3, §4.8): at most one row has is_active = true at any
// time. Enforced by the admin write path wrapping the flip in a transaction
// (set target active, unset all others) — not by a DB-level partial unique
// index, since Postgres cannot express "at most one true" without excluding
// the false rows from the index, which would still require app-level
// transactional discipline to avoid a race between the unset and the set.
type LlmConfig struct {
	ent.Schema
}

// Fields of the LlmConfig.
func (LlmConfig) Fields() []ent.Field {
	return []ent.Field{
		field.Int("id").
			Unique().
			Immutable(),
		field.String("name").
			Unique().
			NotEmpty(),
		field.String("provider").
			NotEmpty().
			Comment("ollama | llamacpp | vllm | openai-compatible | anthropic | groq | embedded"),
		field.String("model_name").
			NotEmpty(),
		field.String("endpoint_url").
			Optional(),
		field.String("api_key").
			Optional().
			Sensitive(),
		field.Int("timeout_seconds").
			Default(60),
		field.Int("max_tokens").
			Optional().
			Nillable(),
		field.Float("temperature").
			Optional().
			Nillable(),
		field.Bool("is_active").
			Default(false),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Indexes of the LlmConfig.
func (LlmConfig) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("is_active"),
	}
}
