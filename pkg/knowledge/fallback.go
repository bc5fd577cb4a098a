package knowledge

import (
	"context"
	"embed"
	"strings"
)

//go:embed knowledgedocs/*.md
var fallbackDocs embed.FS

// fallbackTags names, for each embedded file, the selection tag it answers
// to. Keyed by file name without extension.
var fallbackTags = map[string]string{
	"list":            "list",
	"detail":          "detail",
	"popup":           "popup",
	"list_with_popup": "list_with_popup",
	"master_detail":   "master_detail",
	"spring_entity":   "all",
}

// fallbackCatalog is the deterministic on-disk fallback used when the
// database catalog returns empty (spec §4.2 step 5: "a deterministic set
// of on-disk markdown documents keyed by screen_type").
type fallbackCatalog struct {
	entries []Entry
}

func newFallbackCatalog() *fallbackCatalog {
	dirEntries, err := fallbackDocs.ReadDir("knowledgedocs")
	if err != nil {
		// Embedded at build time; a read failure here means the embed
		// directive itself is broken, which compilation would already
		// have caught. Degrade to an empty fallback rather than panic.
		return &fallbackCatalog{}
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := strings.TrimSuffix(de.Name(), ".md")
		content, err := fallbackDocs.ReadFile("knowledgedocs/" + de.Name())
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:          name,
			Category:      "standard",
			Content:       string(content),
			RelevanceTags: []string{fallbackTags[name]},
			Priority:      PriorityMedium,
			TokenEstimate: len(content) / 4, // rough token estimate
			IsActive:      true,
		})
	}
	return &fallbackCatalog{entries: entries}
}

func (f *fallbackCatalog) ActiveEntries(_ context.Context) ([]Entry, error) {
	return f.entries, nil
}
