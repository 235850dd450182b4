// Package textutil provides the string helpers the exporter relies on when it
// turns scraped forum markup into listing text and URL-safe names.
//
// The primary use cases are:
//   - Deriving folder slugs from display names
//   - Reducing HTML message bodies to plain text
//   - Building fixed-budget snippets for thread cards
//
// Every helper is a pure function so the rules can be tested in isolation.
package textutil
