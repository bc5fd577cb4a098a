package prompt

import (
	"context"

	"github.com/codeready-toolchain/codegend/ent"
	"github.com/codeready-toolchain/codegend/ent/prompttemplate"
	"github.com/codeready-toolchain/codegend/pkg/models"
)

// Template is the plain view of a PromptTemplate row the compiler consumes.
type Template struct {
	ID                 int
	Name               string
	Product            models.Product
	ScreenType         string // empty means product-wide fallback
	SystemPrompt       string
	UserPromptTemplate string
	Version            int
}

// Lookup resolves the active template for a (product, screen_type) pair.
type Lookup interface {
	// Find returns the most specific active template for product: an exact
	// (product, screenType) match if one exists, else the product-wide
	// (product, NULL) fallback. screenType may be empty, in which case only
	// the fallback is considered.
	Find(ctx context.Context, product models.Product, screenType string) (*Template, error)
}

// EntLookup is the production Lookup backed by the PromptTemplate table.
type EntLookup struct {
	client *ent.Client
}

// NewEntLookup constructs an EntLookup.
func NewEntLookup(client *ent.Client) *EntLookup {
	return &EntLookup{client: client}
}

// Find implements Lookup. It queries the exact screen_type match first and
// only falls back to the product-wide row when no specific row exists —
// the (product, screen_type) pair is strictly more specific than (product,
// NULL), per spec §4.3's matching order.
func (l *EntLookup) Find(ctx context.Context, product models.Product, screenType string) (*Template, error) {
	if screenType != "" {
		row, err := l.client.PromptTemplate.Query().
			Where(
				prompttemplate.ProductEQ(string(product)),
				prompttemplate.ScreenTypeEQ(screenType),
				prompttemplate.IsActiveEQ(true),
			).
			Only(ctx)
		if err == nil {
			return fromRow(row), nil
		}
		if !ent.IsNotFound(err) {
			return nil, err
		}
	}

	row, err := l.client.PromptTemplate.Query().
		Where(
			prompttemplate.ProductEQ(string(product)),
			prompttemplate.ScreenTypeIsNil(),
			prompttemplate.IsActiveEQ(true),
		).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return fromRow(row), nil
}

func fromRow(row *ent.PromptTemplate) *Template {
	var screenType string
	if row.ScreenType != nil {
		screenType = *row.ScreenType
	}
	return &Template{
		ID:                 row.ID,
		Name:               row.Name,
		Product:            models.Product(row.Product),
		ScreenType:         screenType,
		SystemPrompt:       row.SystemPrompt,
		UserPromptTemplate: row.UserPromptTemplate,
		Version:            row.Version,
	}
}
