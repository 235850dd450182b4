// Package render turns archive model entities into self-contained HTML
// documents: the front-page index, per-folder listings, and per-thread
// message pages.
//
// Templates and the stylesheet are embedded. Links are relative so the
// exported tree can be opened straight from disk: the index lives at the root
// and folder and thread pages one level down reference "../".
//
// Message bodies are trusted scraped HTML and pass through untouched except
// for image URL substitution, which is a literal string replacement of each
// resolved URL. A URL that also appears in unrelated text in the same body is
// replaced there too.
package render
