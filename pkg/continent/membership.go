// Package continent turns a scraped list of independent nations, grouped
// under uppercase continent headings, into a country -> continent lookup.
package continent

import (
	"regexp"
	"strings"
)

var (
	stripTags  = regexp.MustCompile(`<.*?>`)
	scriptTags = regexp.MustCompile(`(?s)<(script|style).*?</(script|style)>`)
)

// FlattenHTML reduces a membership page to its visible text nodes, in
// document order: continent headings and country names, one token per line
// of rendered text. Tag boundaries become newlines so adjacent nodes do not
// merge into a single token.
func FlattenHTML(html string) []string {
	text := scriptTags.ReplaceAllString(html, "\n")
	text = stripTags.ReplaceAllString(text, "\n")

	var tokens []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tokens = append(tokens, line)
	}
	return tokens
}
