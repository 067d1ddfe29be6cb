// Package logging assembles the structured slog loggers used by cargo-reg.
//
// It owns the console and JSON handlers and the level plumbing behind the
// --verbose and --log-format flags. Components tag their records with a
// component attribute through NewComponentLogger so console output reads as
// "INFO registry: added alias=... url=...". A no-op logger is provided for
// tests and wiring code that has no logger to pass.
package logging
