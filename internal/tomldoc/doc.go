// Package tomldoc edits TOML documents without disturbing their formatting.
//
// A Document keeps the original text split into line-aligned chunks (blank
// and comment lines, table headers, key/value expressions) next to the
// decoded data. Chunk boundaries come from the expressions and byte ranges
// reported by go-toml's unstable parser. Reads go through the decoded data.
// Edits rewrite only the lines they touch: updating a value swaps the value
// span in place and keeps indentation, key spelling and trailing comments;
// inserts and removals add or drop whole lines. Untouched text serializes
// back byte-for-byte.
//
// A table may be defined by a [header], by dotted keys, by an inline table or
// only implicitly through [table.sub] headers. Edits follow whichever layout
// the document already uses.
package tomldoc
