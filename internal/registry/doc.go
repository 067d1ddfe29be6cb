// Package registry manages the alias => index URL table of a cargo config.
//
// An Editor wraps one parsed document for the duration of a single command:
// load the file contents, apply at most one operation, render the result and
// let the caller persist it. All edits happen in memory through tomldoc, so
// comments, ordering and unrelated tables survive untouched. Failed
// operations leave the document as it was.
//
// Errors carry the alias they concern and match the sentinel kinds below
// with errors.Is. A missing registries table also matches ErrNoSuchRegistry,
// since no alias can exist without it.
package registry
