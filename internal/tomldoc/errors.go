package tomldoc

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTable is returned when an edit targets a table the document does
	// not define.
	ErrNoTable = errors.New("no such table")

	// ErrKeyNotFound is returned when deleting a key that is not present.
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyExists is returned when creating a table under a key that is
	// already defined.
	ErrKeyExists = errors.New("key already exists")
)

// ParseError reports text that is not well-formed TOML. Line and Column are
// 1-based and zero when the position is unknown.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse toml at line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse toml: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
