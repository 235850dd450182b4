// Package catalog records each export run in a SQLite database so the
// exported tree can be queried without parsing HTML.
//
// Every run replaces the folder, thread, and message tables wholesale to match
// the full-rebuild nature of an export; the runs table keeps one row per run.
package catalog
