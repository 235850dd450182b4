// Package main hosts the forumarchive CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration (file, environment, .env, and
// flags) once per invocation and hands it to the export pipeline, the local
// preview server, or the configuration helpers. Commands stay thin; the work
// lives in internal packages.
package main
