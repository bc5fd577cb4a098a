package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// KnowledgeEntry holds the schema definition for the KnowledgeEntry entity.
type KnowledgeEntry struct {
	ent.Schema
}

// Fields of the KnowledgeEntry.
func (KnowledgeEntry) Fields() []ent.Field {
	return []ent.Field{
		field.Int("id").
			Unique().
			Immutable(),
		field.String("name").
			Unique().
			NotEmpty(),
		field.Enum("category").
			Values("architecture", "component", "pattern", "example", "standard"),
		field.String("component").
			Optional().
			Nillable(),
		field.String("section").
			Optional().
			Nillable(),
		field.Text("content").
			Comment("bounded markdown fragment"),
		field.JSON("relevance_tags", []string{}).
			Comment("screen types, product names, component names this entry applies to"),
		field.Enum("priority").
			Values("high", "medium", "low").
			Default("medium"),
		field.Int("token_estimate").
			Default(0),
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

// Indexes of the KnowledgeEntry.
func (KnowledgeEntry) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("is_active", "priority"),
	}
}
