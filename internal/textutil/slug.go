package textutil

import (
	"regexp"
	"strings"
)

// slugSplitPattern matches runs of characters that cannot appear in a slug.
var slugSplitPattern = regexp.MustCompile(`[^a-z0-9]+`)

// DefaultSlug is used when a name reduces to nothing.
const DefaultSlug = "forum"

// Slugify lowercases value and collapses every run of non-alphanumeric ASCII
// characters into a single dash. Leading and trailing dashes are removed.
// Returns DefaultSlug for empty input or input without usable characters.
func Slugify(value string) string {
	if value == "" {
		return DefaultSlug
	}
	slug := slugSplitPattern.ReplaceAllString(strings.ToLower(value), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return DefaultSlug
	}
	return slug
}
