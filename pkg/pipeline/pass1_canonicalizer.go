package pipeline

import (
	"fmt"
	"regexp"
	"sort"
)

// Canonicalizer is Pass 1: syntactic normalization of LLM-style output
// into framework-accepted form. Never fails — it only ever warns, one
// Warning per distinct class of fix applied, carrying the fix count for
// audit.
type Canonicalizer struct{}

func (Canonicalizer) Name() string { return "canonicalizer" }

// eventAttrRename documents one onX= -> on_x= XML attribute rewrite.
type eventAttrRename struct {
	pattern *regexp.Regexp
	to      string
	label   string
}

var eventAttrRenames = []eventAttrRename{
	{regexp.MustCompile(`\bonclick=`), `on_click=`, "onclick→on_click"},
	{regexp.MustCompile(`\bondblclick=`), `on_dblclick=`, "ondblclick→on_dblclick"},
	{regexp.MustCompile(`\bonchange=`), `on_change=`, "onchange→on_change"},
	{regexp.MustCompile(`\bonLoad=`), `on_load=`, "onLoad→on_load"},
}

var bareHandlerValuePattern = regexp.MustCompile(`(on_\w+)="([A-Za-z_]\w*)"`)
var gridMissingVersionPattern = regexp.MustCompile(`<grid(\s[^>]*)?>`)
var gridHasVersionPattern = regexp.MustCompile(`\bversion="[^"]*"`)
var jsFunctionDeclPattern = regexp.MustCompile(`function\s+(\w+)\s*\(([^)]*)\)\s*\{`)

// knownFontTypos maps known misspelled font literals (as they occasionally
// appear in LLM output) to their corrected form.
var knownFontTypos = map[string]string{
	"Ariel":       "Arial",
	"Tahmoa":      "Tahoma",
	"Helvetca":    "Helvetica",
	"Courrier":    "Courier",
}

// Run implements Pass.
func (c Canonicalizer) Run(ctx *GenerationContext) PassResult {
	xml := ctx.XML
	fixCounts := map[string]int{}

	for _, rename := range eventAttrRenames {
		matches := rename.pattern.FindAllStringIndex(xml, -1)
		if len(matches) == 0 {
			continue
		}
		xml = rename.pattern.ReplaceAllString(xml, rename.to)
		fixCounts[rename.label] += len(matches)
	}

	xml = bareHandlerValuePattern.ReplaceAllStringFunc(xml, func(m string) string {
		sub := bareHandlerValuePattern.FindStringSubmatch(m)
		attr, value := sub[1], sub[2]
		fixCounts["add eventfunc"]++
		return fmt.Sprintf(`%s="eventfunc:%s()"`, attr, value)
	})

	xml = gridMissingVersionPattern.ReplaceAllStringFunc(xml, func(m string) string {
		if gridHasVersionPattern.MatchString(m) {
			return m
		}
		fixCounts[`inject <grid version="1.1">`]++
		return m[:len(m)-1] + ` version="1.1">`
	})

	for typo, fix := range knownFontTypos {
		typoPattern := regexp.MustCompile(regexp.QuoteMeta(typo))
		matches := typoPattern.FindAllStringIndex(xml, -1)
		if len(matches) == 0 {
			continue
		}
		xml = typoPattern.ReplaceAllString(xml, fix)
		fixCounts[fmt.Sprintf("font typo %q -> %q", typo, fix)] += len(matches)
	}

	js := ctx.JavaScript
	jsMatches := jsFunctionDeclPattern.FindAllStringSubmatch(js, -1)
	if len(jsMatches) > 0 {
		js = jsFunctionDeclPattern.ReplaceAllString(js, `this.$1 = function($2) {`)
		fixCounts["function fn(){} -> this.fn = function(){}"] += len(jsMatches)
	}

	ctx.XML = xml
	ctx.JavaScript = js

	labels := make([]string, 0, len(fixCounts))
	for label := range fixCounts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		ctx.addWarning(fmt.Sprintf("canonicalizer: applied %q %d time(s)", label, fixCounts[label]))
	}

	return passOk()
}
