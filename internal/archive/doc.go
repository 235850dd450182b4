// Package archive builds the exporter's in-memory model from decoded store
// records: threads with their ordered messages, folders grouping those
// threads, and the read-only profile table.
//
// All defaulting happens here. Downstream renderers receive threads whose
// folder, title, message ids, author, and recipient are already populated, so
// no template has to guess at placeholder text.
package archive
