package pipeline

import (
	"fmt"
	"regexp"
	"sort"
)

// GraphValidator is Pass 4: validates referential integrity between
// declared datasets and the UI components that reference them.
type GraphValidator struct{}

func (GraphValidator) Name() string { return "graph_validator" }

var (
	datasetDeclPattern = regexp.MustCompile(`<x(?:link)?dataset\s+id="([^"]+)"`)
	linkDataRefPattern = regexp.MustCompile(`\blink_data="([^":]+)(?::([^"]+))?"`)
)

// Run implements Pass.
func (v GraphValidator) Run(ctx *GenerationContext) PassResult {
	declared := map[string]bool{}
	for _, m := range datasetDeclPattern.FindAllStringSubmatch(ctx.XML, -1) {
		declared[m[1]] = true
	}

	var unknownIDs []string
	var columnWarnings []string
	for _, m := range linkDataRefPattern.FindAllStringSubmatch(ctx.XML, -1) {
		id := m[1]
		if !declared[id] {
			unknownIDs = append(unknownIDs, id)
			continue
		}
		if m[2] != "" {
			// Column-level references cannot be validated without column
			// metadata on the dataset declaration; always a Warning.
			columnWarnings = append(columnWarnings, fmt.Sprintf("%s:%s", id, m[2]))
		}
	}

	if len(unknownIDs) == 0 {
		for _, ref := range columnWarnings {
			ctx.addWarning(fmt.Sprintf("graph_validator: unvalidated column reference: %s", ref))
		}
		if len(columnWarnings) > 0 {
			return passWarning("unvalidated column reference(s)")
		}
		return passOk()
	}

	sort.Strings(unknownIDs)
	unknownIDs = dedupeSorted(unknownIDs)

	if ctx.Mode == ModeStrict {
		return passError(fmt.Sprintf("unknown dataset reference: %s", unknownIDs[0]))
	}

	for _, id := range unknownIDs {
		ctx.addWarning(fmt.Sprintf("unknown dataset reference: %s", id))
	}
	for _, ref := range columnWarnings {
		ctx.addWarning(fmt.Sprintf("graph_validator: unvalidated column reference: %s", ref))
	}

	return passWarning("unknown dataset reference(s)")
}

func dedupeSorted(sorted []string) []string {
	out := sorted[:0:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
