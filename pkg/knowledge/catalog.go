package knowledge

import (
	"context"

	"github.com/codeready-toolchain/codegend/ent"
	"github.com/codeready-toolchain/codegend/ent/knowledgeentry"
)

// EntCatalog is the production Catalog backed by the KnowledgeEntry table.
type EntCatalog struct {
	client *ent.Client
}

// NewEntCatalog constructs an EntCatalog.
func NewEntCatalog(client *ent.Client) *EntCatalog {
	return &EntCatalog{client: client}
}

// ActiveEntries returns every active row, converted to the selector's plain
// Entry view.
func (c *EntCatalog) ActiveEntries(ctx context.Context) ([]Entry, error) {
	rows, err := c.client.KnowledgeEntry.Query().
		Where(knowledgeentry.IsActiveEQ(true)).
		All(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		var component, section string
		if r.Component != nil {
			component = *r.Component
		}
		if r.Section != nil {
			section = *r.Section
		}
		entries = append(entries, Entry{
			Name:          r.Name,
			Category:      string(r.Category),
			Component:     component,
			Section:       section,
			Content:       r.Content,
			RelevanceTags: r.RelevanceTags,
			Priority:      Priority(r.Priority),
			TokenEstimate: r.TokenEstimate,
			IsActive:      r.IsActive,
		})
	}
	return entries, nil
}
