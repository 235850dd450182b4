package textutil

import "strings"

// DefaultSnippetLength is the character budget for thread previews.
const DefaultSnippetLength = 180

// Ellipsis is appended to truncated snippets.
const Ellipsis = "..."

// Snippet returns the plain text of an HTML body, truncated to maxLength
// characters. The cut falls on the last space inside the budget, so a word
// ending exactly at the budget is dropped too. Trailing '.', ',' and ';' are
// removed before appending Ellipsis. Text that fits is
// returned unchanged without the marker.
func Snippet(body string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultSnippetLength
	}
	plain := StripHTML(body)
	runes := []rune(plain)
	if len(runes) <= maxLength {
		return plain
	}

	head := string(runes[:maxLength])
	truncated := head
	if idx := strings.LastIndex(head, " "); idx >= 0 {
		truncated = head[:idx]
	}
	truncated = strings.TrimSpace(truncated)
	if truncated == "" {
		truncated = strings.TrimSpace(head)
	}
	truncated = strings.TrimRight(truncated, ".,;")
	return truncated + Ellipsis
}
