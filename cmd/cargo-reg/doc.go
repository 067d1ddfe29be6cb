// Package main hosts the cargo-reg CLI entrypoint and command graph.
//
// The Cobra-based command tree maps `cargo reg <subcommand>` invocations onto
// registry edits: it resolves which cargo config to touch from the
// --global/--local/--config flags, runs exactly one registry operation
// against the parsed document, and writes the file back only when the
// operation succeeded. Error rendering and exit codes live here too; the
// internal packages return plain errors.
//
// Keep this package lean: new behaviour belongs in internal/registry or
// internal/config first, then gets surfaced through a command here.
package main
