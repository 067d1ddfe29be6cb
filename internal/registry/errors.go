package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuchRegistry reports an alias that is not configured.
	ErrNoSuchRegistry = errors.New("no such registry")

	// ErrAlreadyExist reports an alias that is already configured.
	ErrAlreadyExist = errors.New("this registry already exists")

	// ErrTableAbsent reports a config without a registries table.
	ErrTableAbsent = errors.New("registries table is absent")

	// ErrBrokenConfig reports a config file that is not valid TOML.
	ErrBrokenConfig = errors.New("config file is broken")

	// ErrNotATable reports a registries key that holds something other than a table.
	ErrNotATable = errors.New("registries is not a table")

	// ErrNotAString reports an alias whose value is not a string.
	ErrNotAString = errors.New("registry index is not a string")
)

// Error is returned by Editor operations. Name is empty for errors about the
// table as a whole.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	if e.Name == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Name)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is treats a missing table as a missing alias.
func (e *Error) Is(target error) bool {
	return target == ErrNoSuchRegistry && e.Err == ErrTableAbsent
}

// BrokenConfigError wraps the parse failure behind ErrBrokenConfig.
type BrokenConfigError struct {
	Err error
}

func (e *BrokenConfigError) Error() string {
	return ErrBrokenConfig.Error()
}

func (e *BrokenConfigError) Unwrap() error {
	return e.Err
}

func (e *BrokenConfigError) Is(target error) bool {
	return target == ErrBrokenConfig
}
