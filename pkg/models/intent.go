// Package models holds the shared data types exchanged between the
// normalizer, knowledge selector, prompt compiler, pipeline, and scheduler.
package models

// Product identifies which target framework a request is generating for.
type Product string

// Supported products.
const (
	ProductXFrame5UI      Product = "xframe5-ui"
	ProductSpringBackend  Product = "spring-backend"
)

// IsValid reports whether p is one of the supported products.
func (p Product) IsValid() bool {
	return p == ProductXFrame5UI || p == ProductSpringBackend
}

// ScreenType classifies the kind of UI screen a UiIntent describes.
type ScreenType string

// Supported screen types.
const (
	ScreenTypeList           ScreenType = "list"
	ScreenTypeDetail         ScreenType = "detail"
	ScreenTypePopup          ScreenType = "popup"
	ScreenTypeListWithPopup  ScreenType = "list_with_popup"
	ScreenTypeMasterDetail   ScreenType = "master_detail"
)

// IsValid reports whether t is a known screen type.
func (t ScreenType) IsValid() bool {
	switch t {
	case ScreenTypeList, ScreenTypeDetail, ScreenTypePopup, ScreenTypeListWithPopup, ScreenTypeMasterDetail:
		return true
	default:
		return false
	}
}

// DataType is the primitive column type used by generated datasets.
type DataType string

// Supported column data types.
const (
	DataTypeString DataType = "STRING"
	DataTypeNumber DataType = "NUMBER"
)

// Column describes a single dataset column.
type Column struct {
	Name      string   `json:"name"`
	Type      DataType `json:"type"`
	IsPrimary bool     `json:"is_primary,omitempty"`
}

// Dataset is a named, typed collection of columns a grid can bind to.
type Dataset struct {
	ID      string   `json:"id"`
	Columns []Column `json:"columns"`
}

// Grid binds a UI grid component to a dataset.
type Grid struct {
	Name       string `json:"name"`
	DatasetRef string `json:"dataset_ref"`
}

// Action names a transaction stub the compiler requests from the template/LLM.
type Action struct {
	Name            string `json:"name"`
	TransactionStub string `json:"transaction_stub"`
}

// UiIntent is the normalized, product-specific description of a UI screen
// to generate. Every Grid.DatasetRef must resolve to a Dataset.ID — this
// invariant is enforced by Validate, not by construction.
type UiIntent struct {
	ScreenName string     `json:"screen_name"`
	ScreenType ScreenType `json:"screen_type"`
	Datasets   []Dataset  `json:"datasets"`
	Grids      []Grid     `json:"grids"`
	Actions    []Action   `json:"actions"`
}

// Validate checks the Grid.DatasetRef closure invariant named in spec §3.
func (u *UiIntent) Validate() error {
	ids := make(map[string]bool, len(u.Datasets))
	for _, ds := range u.Datasets {
		ids[ds.ID] = true
	}
	for _, g := range u.Grids {
		if !ids[g.DatasetRef] {
			return &DanglingGridRefError{Grid: g.Name, DatasetRef: g.DatasetRef}
		}
	}
	return nil
}

// DanglingGridRefError reports a Grid whose DatasetRef names no declared Dataset.
type DanglingGridRefError struct {
	Grid       string
	DatasetRef string
}

func (e *DanglingGridRefError) Error() string {
	return "grid " + e.Grid + " references unknown dataset " + e.DatasetRef
}

// JavaType is the Java-side type a Spring DTO/entity field is mapped to.
type JavaType string

// Common Java field types produced from DB column type hints.
const (
	JavaTypeString  JavaType = "String"
	JavaTypeLong    JavaType = "Long"
	JavaTypeInteger JavaType = "Integer"
	JavaTypeBoolean JavaType = "Boolean"
	JavaTypeDouble  JavaType = "Double"
	JavaTypeDate    JavaType = "LocalDateTime"
)

// SpringField pairs a DB column with its Java-side representation.
type SpringField struct {
	ColumnName string   `json:"column_name"`
	FieldName  string   `json:"field_name"`
	JavaType   JavaType `json:"java_type"`
	IsPrimary  bool     `json:"is_primary,omitempty"`
}

// SpringRelation describes a JPA-style relation between two entities.
type SpringRelation struct {
	Kind       string `json:"kind"` // one-to-many, many-to-one, many-to-many
	TargetName string `json:"target_name"`
	FieldName  string `json:"field_name"`
}

// SpringArtifact names one file the Spring backend generator should produce.
type SpringArtifact string

// Artifact kinds the Spring product can produce.
const (
	SpringArtifactController SpringArtifact = "controller"
	SpringArtifactService    SpringArtifact = "service"
	SpringArtifactDTO        SpringArtifact = "dto"
	SpringArtifactMapper     SpringArtifact = "mapper"
	SpringArtifactEntity     SpringArtifact = "entity"
	SpringArtifactRepository SpringArtifact = "repository"
)

// SpringIntent is the normalized, product-specific description of a backend
// scaffold to generate for the Java web framework target.
type SpringIntent struct {
	EntityName string           `json:"entity_name"`
	Fields     []SpringField    `json:"fields"`
	Relations  []SpringRelation `json:"relations,omitempty"`
	Artifacts  []SpringArtifact `json:"artifacts"`
}

// Validate checks that at least one field and one artifact were requested.
func (s *SpringIntent) Validate() error {
	if len(s.Fields) == 0 {
		return &InvalidSpringIntentError{Reason: "no fields"}
	}
	if len(s.Artifacts) == 0 {
		return &InvalidSpringIntentError{Reason: "no artifacts requested"}
	}
	return nil
}

// InvalidSpringIntentError reports a structurally invalid SpringIntent.
type InvalidSpringIntentError struct {
	Reason string
}

func (e *InvalidSpringIntentError) Error() string {
	return "invalid spring intent: " + e.Reason
}

// Intent is the union of the two product-specific intent shapes a normalized
// request can carry. Exactly one of UI or Spring is populated, selected by
// the owning GenerateRequest.Product.
type Intent struct {
	UI     *UiIntent     `json:"ui,omitempty"`
	Spring *SpringIntent `json:"spring,omitempty"`

	// Warnings collects non-fatal normalization observations (e.g. reserved
	// identifiers preserved as-is) — surfaced to callers, never fatal.
	Warnings []string `json:"warnings,omitempty"`
}
