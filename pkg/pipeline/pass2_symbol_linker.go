package pipeline

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// SymbolLinker is Pass 2: ensures every XML-declared handler has a
// JavaScript counterpart, stubbing missing ones outside Strict mode.
type SymbolLinker struct{}

func (SymbolLinker) Name() string { return "symbol_linker" }

var (
	handlerAttrValuePattern = regexp.MustCompile(`\bon_\w+="([^"]*)"`)
	eventfuncCallPattern    = regexp.MustCompile(`^eventfunc:(\w+)\(`)
	bareHandlerNamePattern  = regexp.MustCompile(`^(\w+)`)
	declaredFunctionPattern = regexp.MustCompile(`this\.(\w+)\s*=\s*function`)
)

// knownGridEventArgs documents the argument list known grid event handlers
// are invoked with, used to shape generated stubs.
var knownGridEventArgs = map[string]string{
	"fn_select": "row",
	"fn_sort":   "column, direction",
}

// extractXMLHandlerNames returns H_xml: handler names referenced from
// on_* attribute values, stripped of the eventfunc: wrapper and any
// argument list.
func extractXMLHandlerNames(xml string) []string {
	seen := map[string]bool{}
	var names []string
	for _, m := range handlerAttrValuePattern.FindAllStringSubmatch(xml, -1) {
		value := strings.TrimSpace(m[1])
		var name string
		if sub := eventfuncCallPattern.FindStringSubmatch(value); sub != nil {
			name = sub[1]
		} else if sub := bareHandlerNamePattern.FindStringSubmatch(value); sub != nil {
			name = sub[1]
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// extractDeclaredFunctions returns F_js: function names declared on this.
func extractDeclaredFunctions(js string) map[string]bool {
	declared := map[string]bool{}
	for _, m := range declaredFunctionPattern.FindAllStringSubmatch(js, -1) {
		declared[m[1]] = true
	}
	return declared
}

// Run implements Pass.
func (l SymbolLinker) Run(ctx *GenerationContext) PassResult {
	handlers := extractXMLHandlerNames(ctx.XML)
	declared := extractDeclaredFunctions(ctx.JavaScript)

	var missing []string
	for _, h := range handlers {
		if !declared[h] {
			missing = append(missing, h)
		}
	}
	if len(missing) == 0 {
		return passOk()
	}
	sort.Strings(missing)

	if ctx.Mode == ModeStrict {
		return passError(fmt.Sprintf("missing handlers: %s", strings.Join(missing, ", ")))
	}

	var stubs strings.Builder
	for _, name := range missing {
		args := knownGridEventArgs[name]
		fmt.Fprintf(&stubs, "\nthis.%s = function(%s) { /* TODO: implement %s */ };\n", name, args, name)
	}
	ctx.JavaScript += stubs.String()
	ctx.addWarning(fmt.Sprintf("symbol_linker: stubbed missing handler(s): %s", strings.Join(missing, ", ")))

	return passWarning("stubbed missing handlers")
}
