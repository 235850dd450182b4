package textutil

import "fmt"

// Pluralize returns word with an "s" suffix unless count is exactly one.
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

// CountLabel formats count followed by the matching form of word, e.g. "3 threads".
func CountLabel(count int, word string) string {
	return fmt.Sprintf("%d %s", count, Pluralize(word, count))
}
