package textutil

import (
	"html"
	"regexp"
	"strings"
)

// tagPattern matches a single markup tag. It is deliberately loose: scraped
// bodies are not guaranteed to be well formed.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// StripHTML removes tags, decodes entities, and collapses whitespace runs
// (including non-breaking spaces produced by &nbsp;) into single spaces.
func StripHTML(text string) string {
	if text == "" {
		return ""
	}
	plain := tagPattern.ReplaceAllString(text, " ")
	plain = html.UnescapeString(plain)
	return strings.Join(strings.Fields(plain), " ")
}
