package generator

import (
	"regexp"
	"strings"

	"ecotourism-workers/internal/translator/sparql"

	"golang.org/x/text/unicode/norm"
)

var fencedBlock = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")

var quotes = strings.NewReplacer(
	"“", `"`, "”", `"`, "„", `"`, "‟", `"`,
	"«", `"`, "»", `"`, "″", `"`,
	"‘", "'", "’", "'", "‚", "'", "‛", "'",
)

// Clean normalizes raw model output into query text: NFC, code fences
// removed, typographic quotes collapsed, and PREFIX lines added when the
// text opens directly with SELECT.
func Clean(text, namespace string) string {
	text = norm.NFC.String(text)
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	text = strings.ReplaceAll(text, "```", "")
	text = quotes.Replace(text)
	text = strings.TrimSpace(text)

	if strings.HasPrefix(strings.ToUpper(text), "SELECT") {
		text = sparql.Prefixes(namespace) + "\n" + text
	}
	return text
}
