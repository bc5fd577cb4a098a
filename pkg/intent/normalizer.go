// Package intent implements the Intent Normalizer (spec §4.1): it accepts
// the polymorphic InputKind a caller submitted and produces the
// product-specific intent structure (UiIntent or SpringIntent) that the
// prompt compiler renders.
package intent

import (
	"github.com/codeready-toolchain/codegend/pkg/apperrors"
	"github.com/codeready-toolchain/codegend/pkg/models"
)

// Normalize converts input into a product-specific Intent. It fails with
// apperrors.KindInvalidInput if required fields are missing (spec §4.1).
func Normalize(product models.Product, input models.InputKind) (*models.Intent, error) {
	if !product.IsValid() {
		return nil, apperrors.New(apperrors.KindInvalidInput, "unknown product: "+string(product))
	}
	if !input.Kind.IsValid() {
		return nil, apperrors.New(apperrors.KindInvalidInput, "unknown input kind: "+string(input.Kind))
	}

	switch input.Kind {
	case models.InputKindSchema:
		return normalizeSchema(product, input.Schema)
	case models.InputKindQuerySample:
		return normalizeQuerySample(product, input.QuerySample)
	case models.InputKindNaturalLanguage:
		return normalizeNaturalLanguage(product, input.NaturalLanguage)
	case models.InputKindCustomIntent:
		return normalizeCustomIntent(product, input.CustomIntent)
	default:
		return nil, apperrors.New(apperrors.KindInvalidInput, "unsupported input kind: "+string(input.Kind))
	}
}

// normalizeCustomIntent validates a caller-supplied intent rather than
// deriving one. The caller is expected to have populated the field matching
// product (UI for xframe5-ui, Spring for spring-backend).
func normalizeCustomIntent(product models.Product, in *models.Intent) (*models.Intent, error) {
	if in == nil {
		return nil, apperrors.New(apperrors.KindInvalidInput, "custom_intent payload missing")
	}
	switch product {
	case models.ProductXFrame5UI:
		if in.UI == nil {
			return nil, apperrors.New(apperrors.KindInvalidInput, "custom_intent.ui required for xframe5-ui")
		}
		if err := in.UI.Validate(); err != nil {
			return nil, apperrors.Wrap(apperrors.KindInvalidInput, "invalid custom UI intent", err)
		}
	case models.ProductSpringBackend:
		if in.Spring == nil {
			return nil, apperrors.New(apperrors.KindInvalidInput, "custom_intent.spring required for spring-backend")
		}
		if err := in.Spring.Validate(); err != nil {
			return nil, apperrors.Wrap(apperrors.KindInvalidInput, "invalid custom Spring intent", err)
		}
	}
	return in, nil
}
