// Package config finds and persists the cargo config files that hold
// registry aliases.
//
// Two locations exist: the global config under CARGO_HOME (or ~/.cargo) and
// the local config under the working directory's .cargo folder. Location
// captures which one a command targets; Merged means "local for edits, global
// overlaid by local for listing". Inside a .cargo directory a legacy `config`
// file takes precedence over `config.toml`, matching cargo.
//
// File wraps the read-modify-write cycle: Open takes an exclusive flock on
// the config file itself, reads the whole file, and Write truncates and
// rewrites it in place. Read is lock-free and never creates a file or
// directory.
package config
