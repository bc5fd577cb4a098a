package intent

import (
	"regexp"
	"strings"

	"github.com/codeready-toolchain/codegend/pkg/apperrors"
	"github.com/codeready-toolchain/codegend/pkg/models"
)

// selectPattern recognizes a top-level "SELECT <list> FROM <table>..."
// shape. JOINs and aliases are accepted in the trailing text but not
// exploited (spec §4.1 "For QuerySample").
var (
	selectPattern  = regexp.MustCompile(`(?is)^\s*SELECT\s+(.+?)\s+FROM\s+([\w.]+)`)
	asAliasPattern = regexp.MustCompile(`(?i)\s+AS\s+`)
)

// normalizeQuerySample parses SQL's SELECT projection list into dataset
// columns. Fails with InvalidInput if the text does not begin with a
// SELECT keyword or the projection list cannot be split.
func normalizeQuerySample(product models.Product, in *models.QuerySampleInput) (*models.Intent, error) {
	if in == nil {
		return nil, apperrors.New(apperrors.KindInvalidInput, "query_sample input missing")
	}

	match := selectPattern.FindStringSubmatch(in.SQL)
	if match == nil {
		return nil, apperrors.New(apperrors.KindInvalidInput, "query_sample.sql must begin with SELECT ... FROM ...")
	}
	projectionList, table := match[1], lastSegment(match[2])

	columns, err := parseProjections(projectionList)
	if err != nil {
		return nil, err
	}
	if err := checkDuplicateColumns(columns); err != nil {
		return nil, err
	}

	var warnings []string
	datasetID := table

	switch product {
	case models.ProductXFrame5UI:
		cols := make([]models.Column, 0, len(columns))
		for _, c := range columns {
			warnings = flagReserved(warnings, "column", c.Name)
			cols = append(cols, models.Column{Name: c.Name, Type: dataTypeFor(c.TypeHint)})
		}
		ui := &models.UiIntent{
			ScreenName: table,
			ScreenType: models.ScreenTypeList,
			Datasets:   []models.Dataset{{ID: datasetID, Columns: cols}},
			Grids:      []models.Grid{{Name: table + "Grid", DatasetRef: datasetID}},
		}
		if err := ui.Validate(); err != nil {
			return nil, apperrors.Wrap(apperrors.KindInvalidInput, "normalized UI intent failed validation", err)
		}
		return &models.Intent{UI: ui, Warnings: warnings}, nil

	case models.ProductSpringBackend:
		fields := make([]models.SpringField, 0, len(columns))
		for _, c := range columns {
			warnings = flagReserved(warnings, "column", c.Name)
			fields = append(fields, models.SpringField{
				ColumnName: c.Name,
				FieldName:  camelCase(c.Name),
				JavaType:   javaTypeFor(c.TypeHint),
			})
		}
		spring := &models.SpringIntent{
			EntityName: table,
			Fields:     fields,
			Artifacts:  []models.SpringArtifact{models.SpringArtifactDTO, models.SpringArtifactController},
		}
		if err := spring.Validate(); err != nil {
			return nil, apperrors.Wrap(apperrors.KindInvalidInput, "normalized Spring intent failed validation", err)
		}
		return &models.Intent{Spring: spring, Warnings: warnings}, nil

	default:
		return nil, apperrors.New(apperrors.KindInvalidInput, "unsupported product: "+string(product))
	}
}

// parseProjections splits a SELECT projection list on top-level commas
// (ignoring commas nested inside parentheses, e.g. function calls) and
// derives a column name per projection. No type hints are available from a
// bare query sample, so columns default to the string type hint.
func parseProjections(list string) ([]models.RawColumn, error) {
	if strings.TrimSpace(list) == "*" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "query_sample.sql must not use SELECT *")
	}

	parts := splitTopLevelComma(list)
	if len(parts) == 0 {
		return nil, apperrors.New(apperrors.KindInvalidInput, "query_sample.sql projection list is empty")
	}

	columns := make([]models.RawColumn, 0, len(parts))
	for _, p := range parts {
		name := projectionName(p)
		if name == "" {
			return nil, apperrors.New(apperrors.KindInvalidInput, "could not derive column name from projection: "+p)
		}
		columns = append(columns, models.RawColumn{Name: name, TypeHint: "varchar"})
	}
	return columns, nil
}

func splitTopLevelComma(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// projectionName derives a column name from a single SELECT projection,
// preferring an explicit "AS alias", falling back to the last
// dot-qualified segment of the expression (e.g. "t.user_id" → "user_id").
func projectionName(projection string) string {
	if loc := asAliasPattern.FindStringIndex(projection); loc != nil {
		return strings.TrimSpace(projection[loc[1]:])
	}
	return lastSegment(strings.TrimSpace(projection))
}

func lastSegment(s string) string {
	if idx := strings.LastIndex(s, "."); idx != -1 {
		return s[idx+1:]
	}
	return s
}
