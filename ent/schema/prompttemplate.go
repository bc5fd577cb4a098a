package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// PromptTemplate holds the schema definition for the PromptTemplate entity.
type PromptTemplate struct {
	ent.Schema
}

// Fields of the PromptTemplate.
func (PromptTemplate) Fields() []ent.Field {
	return []ent.Field{
		field.Int("id").
			Unique().
			Immutable(),
		field.String("name").
			NotEmpty(),
		field.String("product").
			NotEmpty().
			Comment("xframe5-ui | spring-backend"),
		field.String("screen_type").
			Optional().
			Nillable().
			Comment("nil means product-wide fallback template"),
		field.Text("system_prompt").
			Comment("instruction skeleton; source of truth for compiler assembly order"),
		field.Text("user_prompt_template").
			Comment("must contain {{intent_description}} placeholder"),
		field.Int("version").
			Default(1),
		field.Bool("is_active").
			Default(true),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Indexes of the PromptTemplate.
func (PromptTemplate) Indexes() []ent.Index {
	return []ent.Index{
		// Uniqueness: (product, name) per spec §3.
		index.Fields("product", "name").
			Unique(),
		index.Fields("product", "screen_type", "is_active"),
	}
}
