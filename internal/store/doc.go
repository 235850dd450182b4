// Package store reads the forum scraper's on-disk output: per-thread YAML
// transcripts under threads/, per-author YAML profiles under profiles/, and
// hashed binaries under files/.
//
// The package only consumes the store; it never writes to it. Records are
// decoded leniently. Missing or oddly typed fields become empty strings, and
// downstream code owns every default.
package store
