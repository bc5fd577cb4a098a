package knowledge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/codegend/pkg/models"
)

func TestSelectRanksByPriorityThenTokenEstimate(t *testing.T) {
	catalog := []Entry{
		{Name: "low-entry", RelevanceTags: []string{"list"}, Priority: PriorityLow, TokenEstimate: 10, IsActive: true},
		{Name: "high-entry", RelevanceTags: []string{"list"}, Priority: PriorityHigh, TokenEstimate: 50, IsActive: true},
		{Name: "medium-entry", RelevanceTags: []string{"list"}, Priority: PriorityMedium, TokenEstimate: 5, IsActive: true},
	}
	result := Select(catalog, map[string]bool{"list": true}, 1000)
	require.Len(t, result.Entries, 3)
	assert.Equal(t, "high-entry", result.Entries[0].Name)
	assert.Equal(t, "medium-entry", result.Entries[1].Name)
	assert.Equal(t, "low-entry", result.Entries[2].Name)
}

func TestSelectIgnoresInactiveAndUnrelatedTags(t *testing.T) {
	catalog := []Entry{
		{Name: "inactive", RelevanceTags: []string{"list"}, Priority: PriorityHigh, TokenEstimate: 1, IsActive: false},
		{Name: "wrong-tag", RelevanceTags: []string{"detail"}, Priority: PriorityHigh, TokenEstimate: 1, IsActive: true},
		{Name: "matched", RelevanceTags: []string{"list"}, Priority: PriorityHigh, TokenEstimate: 1, IsActive: true},
	}
	result := Select(catalog, map[string]bool{"list": true}, 1000)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "matched", result.Entries[0].Name)
}

func TestSelectTokenBudgetExcludesHighPriorityWithWarning(t *testing.T) {
	catalog := []Entry{
		{Name: "cheap", RelevanceTags: []string{"list"}, Priority: PriorityHigh, TokenEstimate: 10, IsActive: true},
		{Name: "expensive", RelevanceTags: []string{"list"}, Priority: PriorityHigh, TokenEstimate: 1000, IsActive: true},
	}
	result := Select(catalog, map[string]bool{"list": true}, 20)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "cheap", result.Entries[0].Name)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "expensive")
}

func TestSelectIsIdempotent(t *testing.T) {
	catalog := []Entry{
		{Name: "a", RelevanceTags: []string{"all"}, Priority: PriorityMedium, TokenEstimate: 10, IsActive: true},
		{Name: "b", RelevanceTags: []string{"all"}, Priority: PriorityHigh, TokenEstimate: 10, IsActive: true},
	}
	tags := map[string]bool{"all": true}
	first := Select(catalog, tags, 1000)
	second := Select(catalog, tags, 1000)
	assert.Equal(t, first.Entries, second.Entries)
}

// stubCatalog lets Selector tests exercise the DB-empty → fallback path
// without a real ent client.
type stubCatalog struct {
	entries []Entry
	err     error
}

func (s *stubCatalog) ActiveEntries(_ context.Context) ([]Entry, error) {
	return s.entries, s.err
}

func TestSelectorFallsBackWhenCatalogEmpty(t *testing.T) {
	sel := NewSelector(&stubCatalog{}, 0)
	result, err := sel.Select(context.Background(), models.ProductXFrame5UI, &models.Intent{
		UI: &models.UiIntent{ScreenType: models.ScreenTypeList},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Entries)
}

func TestSelectorUsesCatalogWhenNonEmpty(t *testing.T) {
	sel := NewSelector(&stubCatalog{entries: []Entry{
		{Name: "db-entry", RelevanceTags: []string{"all"}, Priority: PriorityHigh, TokenEstimate: 1, IsActive: true},
	}}, 0)
	result, err := sel.Select(context.Background(), models.ProductXFrame5UI, &models.Intent{
		UI: &models.UiIntent{ScreenType: models.ScreenTypeList},
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "db-entry", result.Entries[0].Name)
}
