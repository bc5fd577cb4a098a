package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codeready-toolchain/codegend/pkg/models"
)

// RenderIntent produces the deterministic textual description substituted
// for {{intent_description}} in a template's user_prompt_template. Field
// order is fixed regardless of map iteration or slice construction order —
// spec §8 names "identical compiled prompt for identical input" as a
// testable property, so nothing here may vary run to run for the same
// Intent value.
func RenderIntent(in *models.Intent) string {
	switch {
	case in.UI != nil:
		return renderUiIntent(in.UI)
	case in.Spring != nil:
		return renderSpringIntent(in.Spring)
	default:
		return ""
	}
}

func renderUiIntent(u *models.UiIntent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Screen: %s (%s)\n", u.ScreenName, u.ScreenType)

	b.WriteString("Datasets:\n")
	for _, ds := range u.Datasets {
		fmt.Fprintf(&b, "  - %s\n", ds.ID)
		for _, col := range ds.Columns {
			marker := ""
			if col.IsPrimary {
				marker = " (primary key)"
			}
			fmt.Fprintf(&b, "      %s: %s%s\n", col.Name, col.Type, marker)
		}
	}

	if len(u.Grids) > 0 {
		b.WriteString("Grids:\n")
		for _, g := range u.Grids {
			fmt.Fprintf(&b, "  - %s -> %s\n", g.Name, g.DatasetRef)
		}
	}

	if len(u.Actions) > 0 {
		b.WriteString("Actions:\n")
		for _, a := range u.Actions {
			fmt.Fprintf(&b, "  - %s: %s\n", a.Name, a.TransactionStub)
		}
	}

	return b.String()
}

func renderSpringIntent(s *models.SpringIntent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Entity: %s\n", s.EntityName)

	b.WriteString("Fields:\n")
	for _, f := range s.Fields {
		marker := ""
		if f.IsPrimary {
			marker = " (primary key)"
		}
		fmt.Fprintf(&b, "  - %s (%s): %s%s\n", f.FieldName, f.ColumnName, f.JavaType, marker)
	}

	if len(s.Relations) > 0 {
		b.WriteString("Relations:\n")
		for _, r := range s.Relations {
			fmt.Fprintf(&b, "  - %s %s -> %s\n", r.Kind, r.FieldName, r.TargetName)
		}
	}

	artifacts := make([]string, len(s.Artifacts))
	for i, a := range s.Artifacts {
		artifacts[i] = string(a)
	}
	sort.Strings(artifacts)
	fmt.Fprintf(&b, "Artifacts: %s\n", strings.Join(artifacts, ", "))

	return b.String()
}
