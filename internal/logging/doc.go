// Package logging assembles the structured slog loggers used by the exporter
// and its CLI.
//
// It owns the console and JSON handlers, level parsing, and the attribute
// helpers that keep field names consistent (component, run_id, thread_id).
// A no-op logger is provided for tests and wiring code that has no logger to
// hand.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits lines with the same shape.
package logging
