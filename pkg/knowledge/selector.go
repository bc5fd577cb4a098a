package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/codeready-toolchain/codegend/pkg/models"
)

// DefaultTokenBudget is the per-request budget applied when the caller (or
// config.Defaults.KnowledgeTokenBudget) does not override it (spec §4.2
// step 4).
const DefaultTokenBudget = 3000

// Catalog is the source of active knowledge entries. EntCatalog is the
// production implementation backed by the ent client; fallbackCatalog
// backs the on-disk markdown fallback.
type Catalog interface {
	ActiveEntries(ctx context.Context) ([]Entry, error)
}

// Selector selects and ranks knowledge entries for a given intent.
type Selector struct {
	catalog     Catalog
	fallback    Catalog
	tokenBudget int
}

// NewSelector constructs a Selector. tokenBudget <= 0 uses DefaultTokenBudget.
func NewSelector(catalog Catalog, tokenBudget int) *Selector {
	if tokenBudget <= 0 {
		tokenBudget = DefaultTokenBudget
	}
	return &Selector{catalog: catalog, fallback: newFallbackCatalog(), tokenBudget: tokenBudget}
}

// Result is the selector's output: the ordered entries chosen plus any
// non-fatal observations (e.g. a high-priority entry dropped by budget).
type Result struct {
	Entries  []Entry
	Warnings []string
}

// Select runs the selection algorithm for the given product/intent (spec
// §4.2 steps 1-5).
func (s *Selector) Select(ctx context.Context, product models.Product, in *models.Intent) (*Result, error) {
	tags := selectionTags(product, in)

	entries, err := s.catalog.ActiveEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching knowledge catalog: %w", err)
	}
	if len(entries) == 0 {
		slog.Info("knowledge catalog empty, falling back to on-disk documents", "screen_type", screenTypeTag(in))
		entries, err = s.fallback.ActiveEntries(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching fallback knowledge: %w", err)
		}
	}

	return Select(entries, tags, s.tokenBudget), nil
}

// Select is the pure selection function described in spec §4.2: a function
// of the catalog and the selection tag set only, independent of any I/O.
// Same inputs always produce the same ordered output (spec's idempotency
// guarantee).
func Select(catalog []Entry, tags map[string]bool, tokenBudget int) *Result {
	var matched []Entry
	for _, e := range catalog {
		if !e.IsActive {
			continue
		}
		if e.hasAnyTag(tags) {
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Priority.rank() != matched[j].Priority.rank() {
			return matched[i].Priority.rank() < matched[j].Priority.rank()
		}
		return matched[i].TokenEstimate < matched[j].TokenEstimate
	})

	var chosen []Entry
	var warnings []string
	used := 0
	for _, e := range matched {
		if used+e.TokenEstimate > tokenBudget {
			if e.Priority == PriorityHigh {
				warnings = append(warnings, fmt.Sprintf("high-priority knowledge entry %q excluded by token budget", e.Name))
			}
			continue
		}
		chosen = append(chosen, e)
		used += e.TokenEstimate
	}

	return &Result{Entries: chosen, Warnings: warnings}
}

// selectionTags builds the tag set of spec §4.2 step 1: screen_type (or
// entity shape for Spring), "all", and any component names present in the
// intent.
func selectionTags(product models.Product, in *models.Intent) map[string]bool {
	tags := map[string]bool{"all": true}
	if in == nil {
		return tags
	}
	if t := screenTypeTag(in); t != "" {
		tags[t] = true
	}
	if in.UI != nil {
		for _, g := range in.UI.Grids {
			tags[g.Name] = true
		}
	}
	if in.Spring != nil {
		tags[in.Spring.EntityName] = true
		for _, f := range in.Spring.Relations {
			tags[f.TargetName] = true
		}
	}
	_ = product
	return tags
}

func screenTypeTag(in *models.Intent) string {
	if in == nil || in.UI == nil {
		return ""
	}
	return string(in.UI.ScreenType)
}
