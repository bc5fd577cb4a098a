package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/entsql"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// GenerationLog holds the schema definition for the GenerationLog entity.
//
// Invariant (spec §3, §4.7, §8): the raw input payload is never persisted.
// Only a structural intent snapshot (elided for natural-language inputs)
// and the outputs are stored. There is intentionally no "input_payload"
// field on this schema — that absence IS the enforcement mechanism; writers
// in pkg/audit never have a column to accidentally populate.
type GenerationLog struct {
	ent.Schema
}

// Fields of the GenerationLog.
func (GenerationLog) Fields() []ent.Field {
	return []ent.Field{
		field.Int("id").
			Unique().
			Immutable(),
		field.String("user_id").
			Optional().
			Nillable(),
		field.String("product").
			NotEmpty(),
		field.String("input_type").
			NotEmpty().
			Comment("InputKindTag name only, never the payload"),
		field.JSON("intent", map[string]interface{}{}).
			Optional().
			Comment("structural intent snapshot; absent for natural-language inputs"),
		field.Int("template_id").
			Optional().
			Nillable(),
		field.Int("template_version").
			Optional().
			Nillable(),
		field.Enum("status").
			Values("success", "failure"),
		field.JSON("artifacts", map[string]string{}).
			Optional().
			Comment("may be truncated by retention policy"),
		field.JSON("warnings", []string{}).
			Optional(),
		field.String("error_message").
			Optional().
			Nillable(),
		field.Int64("elapsed_ms"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("deleted_at").
			Optional().
			Nillable().
			Comment("soft delete for retention sweep"),
	}
}

// Indexes of the GenerationLog.
func (GenerationLog) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("status", "created_at"),
		index.Fields("product", "created_at"),
		index.Fields("deleted_at").
			Annotations(entsql.IndexWhere("deleted_at IS NOT NULL")),
	}
}
