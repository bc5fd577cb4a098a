package pipeline

import (
	"regexp"
	"sort"
	"strings"
)

// OutputParser is Pass 0: splits raw_output into its XML and JavaScript
// sections.
type OutputParser struct{}

func (OutputParser) Name() string { return "output_parser" }

var (
	markerPattern  = regexp.MustCompile(`--- XML ---|<!-- XML -->|--- JS ---|// JS`)
	screenTagRegex = regexp.MustCompile(`<[Ss]creen\b`)
)

func isXMLMarker(m string) bool {
	return m == "--- XML ---" || m == "<!-- XML -->"
}

type markerOccurrence struct {
	start, end int
	isXML      bool
}

// Run implements Pass.
func (p OutputParser) Run(ctx *GenerationContext) PassResult {
	xml, js, found := splitByMarkers(ctx.RawOutput)
	if found {
		ctx.XML = xml
		ctx.JavaScript = js
		return passOk()
	}

	if ctx.Mode == ModeStrict {
		return passError("missing section")
	}

	ctx.XML = heuristicSplit(ctx.RawOutput)
	ctx.JavaScript = ""
	ctx.addWarning("output_parser: no section markers found, used heuristic split")
	return passWarning("heuristic split applied")
}

func splitByMarkers(raw string) (xml, js string, found bool) {
	locs := markerPattern.FindAllStringIndex(raw, -1)
	if len(locs) == 0 {
		return "", "", false
	}

	occurrences := make([]markerOccurrence, 0, len(locs))
	for _, loc := range locs {
		occurrences = append(occurrences, markerOccurrence{
			start: loc[0],
			end:   loc[1],
			isXML: isXMLMarker(raw[loc[0]:loc[1]]),
		})
	}
	sort.Slice(occurrences, func(i, j int) bool { return occurrences[i].start < occurrences[j].start })

	var xmlParts, jsParts []string
	for i, occ := range occurrences {
		sectionEnd := len(raw)
		if i+1 < len(occurrences) {
			sectionEnd = occurrences[i+1].start
		}
		content := raw[occ.end:sectionEnd]
		if occ.isXML {
			xmlParts = append(xmlParts, content)
		} else {
			jsParts = append(jsParts, content)
		}
	}

	return joinTrim(xmlParts), joinTrim(jsParts), true
}

func joinTrim(parts []string) string {
	result := ""
	for _, p := range parts {
		result += p
	}
	return strings.TrimSpace(result)
}

// heuristicSplit locates the first screen tag and discards everything
// before it.
func heuristicSplit(raw string) string {
	loc := screenTagRegex.FindStringIndex(raw)
	if loc == nil {
		return raw
	}
	return raw[loc[0]:]
}
