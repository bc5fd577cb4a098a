package intent

import (
	"strings"

	"github.com/codeready-toolchain/codegend/pkg/apperrors"
	"github.com/codeready-toolchain/codegend/pkg/models"
)

// screenTypeKeywords maps description keywords to the ScreenType they imply,
// checked in order so the most specific compound phrase wins over a looser
// single-word match (spec §4.1 "screen_type may be inferred from keywords
// (heuristic, documented)").
var screenTypeKeywords = []struct {
	keyword string
	screen  models.ScreenType
}{
	{"master detail", models.ScreenTypeMasterDetail},
	{"master-detail", models.ScreenTypeMasterDetail},
	{"list with popup", models.ScreenTypeListWithPopup},
	{"list and popup", models.ScreenTypeListWithPopup},
	{"popup", models.ScreenTypePopup},
	{"dialog", models.ScreenTypePopup},
	{"detail", models.ScreenTypeDetail},
	{"view single", models.ScreenTypeDetail},
	{"list", models.ScreenTypeList},
	{"grid", models.ScreenTypeList},
	{"table", models.ScreenTypeList},
}

// inferScreenType applies the documented keyword heuristic, defaulting to
// ScreenTypeList when no keyword matches — list is the least assumptive
// shape to hand the LLM for further elaboration.
func inferScreenType(description string) models.ScreenType {
	lower := strings.ToLower(description)
	for _, kw := range screenTypeKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.screen
		}
	}
	return models.ScreenTypeList
}

// normalizeNaturalLanguage produces a skeletal intent whose datasets, grids,
// and actions (or fields/artifacts, for Spring) are empty; the knowledge
// selector and LLM are relied on to complete the details (spec §4.1 "For
// NaturalLanguage").
func normalizeNaturalLanguage(product models.Product, in *models.NaturalLanguageInput) (*models.Intent, error) {
	if in == nil || strings.TrimSpace(in.Description) == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "natural_language.description required")
	}

	switch product {
	case models.ProductXFrame5UI:
		ui := &models.UiIntent{
			ScreenName: "",
			ScreenType: inferScreenType(in.Description),
		}
		return &models.Intent{UI: ui}, nil

	case models.ProductSpringBackend:
		spring := &models.SpringIntent{}
		return &models.Intent{Spring: spring}, nil

	default:
		return nil, apperrors.New(apperrors.KindInvalidInput, "unsupported product: "+string(product))
	}
}
