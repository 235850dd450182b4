// Package config loads, normalizes, and validates forumarchive configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// FORUMARCHIVE_STORE. Command-line flags are applied on top by the CLI.
//
// Always obtain settings through this package so downstream code receives
// absolute paths and clear validation errors.
package config
