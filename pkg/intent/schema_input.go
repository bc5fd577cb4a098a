package intent

import (
	"github.com/codeready-toolchain/codegend/pkg/apperrors"
	"github.com/codeready-toolchain/codegend/pkg/models"
)

// normalizeSchema turns a SchemaInput into a product-specific intent (spec
// §4.1 "For Schema"). Fails with InvalidInput if the table has zero
// columns or duplicate column names.
func normalizeSchema(product models.Product, in *models.SchemaInput) (*models.Intent, error) {
	if in == nil {
		return nil, apperrors.New(apperrors.KindInvalidInput, "schema input missing")
	}
	if len(in.Columns) == 0 {
		return nil, apperrors.New(apperrors.KindInvalidInput, "schema input has zero columns")
	}
	if err := checkDuplicateColumns(in.Columns); err != nil {
		return nil, err
	}

	var warnings []string
	primary := make(map[string]bool, len(in.Keys))
	for _, k := range in.Keys {
		primary[k] = true
	}

	switch product {
	case models.ProductXFrame5UI:
		return schemaToUiIntent(in, primary, warnings)
	case models.ProductSpringBackend:
		return schemaToSpringIntent(in, primary, warnings)
	default:
		return nil, apperrors.New(apperrors.KindInvalidInput, "unsupported product: "+string(product))
	}
}

func checkDuplicateColumns(columns []models.RawColumn) error {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c.Name] {
			return apperrors.New(apperrors.KindInvalidInput, "duplicate column name: "+c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// schemaToUiIntent produces a default list-screen skeleton with one grid
// bound to the schema-derived dataset (spec §4.1 "a default list-screen
// skeleton with one grid bound to the schema-derived dataset is produced").
func schemaToUiIntent(in *models.SchemaInput, primary map[string]bool, warnings []string) (*models.Intent, error) {
	datasetID := in.Table
	columns := make([]models.Column, 0, len(in.Columns))
	for _, c := range in.Columns {
		warnings = flagReserved(warnings, "column", c.Name)
		columns = append(columns, models.Column{
			Name:      c.Name,
			Type:      dataTypeFor(c.TypeHint),
			IsPrimary: primary[c.Name],
		})
	}
	warnings = flagReserved(warnings, "table", in.Table)

	ui := &models.UiIntent{
		ScreenName: in.Table,
		ScreenType: models.ScreenTypeList,
		Datasets: []models.Dataset{
			{ID: datasetID, Columns: columns},
		},
		Grids: []models.Grid{
			{Name: in.Table + "Grid", DatasetRef: datasetID},
		},
	}
	if err := ui.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidInput, "normalized UI intent failed validation", err)
	}
	return &models.Intent{UI: ui, Warnings: warnings}, nil
}

func schemaToSpringIntent(in *models.SchemaInput, primary map[string]bool, warnings []string) (*models.Intent, error) {
	fields := make([]models.SpringField, 0, len(in.Columns))
	for _, c := range in.Columns {
		warnings = flagReserved(warnings, "column", c.Name)
		fields = append(fields, models.SpringField{
			ColumnName: c.Name,
			FieldName:  camelCase(c.Name),
			JavaType:   javaTypeFor(c.TypeHint),
			IsPrimary:  primary[c.Name],
		})
	}
	warnings = flagReserved(warnings, "entity", in.Table)

	spring := &models.SpringIntent{
		EntityName: in.Table,
		Fields:     fields,
		Artifacts: []models.SpringArtifact{
			models.SpringArtifactEntity,
			models.SpringArtifactRepository,
			models.SpringArtifactService,
			models.SpringArtifactController,
			models.SpringArtifactDTO,
		},
	}
	if err := spring.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidInput, "normalized Spring intent failed validation", err)
	}
	return &models.Intent{Spring: spring, Warnings: warnings}, nil
}
