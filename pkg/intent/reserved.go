package intent

import "strings"

// reservedIdentifiers are column/entity names that collide with SQL or Java
// keywords. The normalizer never renames them (spec §4.1 "preserved but
// flagged in warnings") — renaming would silently change the generated
// schema's contract with the caller's existing database.
var reservedIdentifiers = map[string]bool{
	"select": true, "from": true, "where": true, "order": true, "group": true,
	"table": true, "index": true, "key": true, "primary": true, "foreign": true,
	"class": true, "interface": true, "enum": true, "package": true, "import": true,
	"public": true, "private": true, "static": true, "final": true, "void": true,
	"new": true, "return": true, "default": true, "case": true, "switch": true,
}

func isReserved(identifier string) bool {
	return reservedIdentifiers[strings.ToLower(strings.TrimSpace(identifier))]
}

// flagReserved appends a warning to warnings (returning the extended slice)
// if name collides with a reserved identifier.
func flagReserved(warnings []string, kind, name string) []string {
	if isReserved(name) {
		warnings = append(warnings, kind+" '"+name+"' is a reserved identifier; preserved as-is")
	}
	return warnings
}
