package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// CompanyRule holds the schema definition for the CompanyRule entity.
// At most one row is expected to be active at a time; enforced by the
// admin write path, not by a DB constraint (mirrors LlmConfig's
// single-active convention, but company rules are optional so an empty
// table is also valid).
type CompanyRule struct {
	ent.Schema
}

// Fields of the CompanyRule.
func (CompanyRule) Fields() []ent.Field {
	return []ent.Field{
		field.Int("id").
			Unique().
			Immutable(),
		field.JSON("naming_convention", map[string]string{}).
			Optional().
			Comment("e.g. {\"table\": \"snake_case\", \"field\": \"camelCase\"}"),
		field.Text("additional_rules").
			Optional().
			Comment("freeform prose appended to the COMPANY RULES prompt section"),
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
