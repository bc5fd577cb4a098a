package pipeline

import (
	"regexp"
)

// Minimalism is Pass 5: removes AI-produced over-engineering by
// deleting JS function definitions that nothing in the XML references
// and that are not part of the lifecycle allowlist. A no-op in Dev mode.
type Minimalism struct{}

func (Minimalism) Name() string { return "minimalism" }

// lifecycleAllowlist names functions kept regardless of reference,
// since the runtime invokes them implicitly rather than via an XML
// event attribute. UI-product-specific per the spec; other products
// may extend this set.
var lifecycleAllowlist = map[string]bool{
	"on_load":  true,
	"fn_init":  true,
	"fn_onload": true,
}

var functionDefPattern = regexp.MustCompile(`(?m)^\s*this\.(\w+)\s*=\s*function\s*\([^)]*\)\s*\{[^}]*\};?\s*\n?`)

// Run implements Pass.
func (m Minimalism) Run(ctx *GenerationContext) PassResult {
	if ctx.Mode == ModeDev {
		return passOk()
	}

	referenced := map[string]bool{}
	for _, name := range extractXMLHandlerNames(ctx.XML) {
		referenced[name] = true
	}

	var removed []string
	ctx.JavaScript = functionDefPattern.ReplaceAllStringFunc(ctx.JavaScript, func(def string) string {
		sub := functionDefPattern.FindStringSubmatch(def)
		name := sub[1]
		if referenced[name] || lifecycleAllowlist[name] {
			return def
		}
		removed = append(removed, name)
		return ""
	})

	if len(removed) == 0 {
		return passOk()
	}

	for _, name := range removed {
		ctx.addWarning("minimalism: removed unreferenced function " + name)
	}

	return passWarning("removed unreferenced function(s)")
}
