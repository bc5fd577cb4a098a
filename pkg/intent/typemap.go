package intent

import (
	"strings"
	"unicode"

	"github.com/codeready-toolchain/codegend/pkg/models"
)

// dataTypeFor maps a caller-reported column type hint to the coarse
// STRING/NUMBER distinction UiIntent datasets use.
func dataTypeFor(typeHint string) models.DataType {
	switch strings.ToLower(strings.TrimSpace(typeHint)) {
	case "int", "integer", "bigint", "smallint", "decimal", "numeric", "float", "double", "number":
		return models.DataTypeNumber
	default:
		return models.DataTypeString
	}
}

// javaTypeFor maps a caller-reported column type hint to the Java field type
// a Spring DTO/entity would declare for it.
func javaTypeFor(typeHint string) models.JavaType {
	switch strings.ToLower(strings.TrimSpace(typeHint)) {
	case "bigint", "long":
		return models.JavaTypeLong
	case "int", "integer", "smallint":
		return models.JavaTypeInteger
	case "bool", "boolean":
		return models.JavaTypeBoolean
	case "decimal", "numeric", "float", "double":
		return models.JavaTypeDouble
	case "date", "datetime", "timestamp":
		return models.JavaTypeDate
	default:
		return models.JavaTypeString
	}
}

// camelCase converts a snake_case or kebab-case column name into a
// lowerCamelCase Java field name.
func camelCase(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	if len(parts) == 0 {
		return name
	}
	var sb strings.Builder
	sb.WriteString(strings.ToLower(parts[0]))
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		r := []rune(strings.ToLower(p))
		r[0] = unicode.ToUpper(r[0])
		sb.WriteString(string(r))
	}
	return sb.String()
}
