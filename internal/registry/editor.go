package registry

import (
	"errors"
	"fmt"

	"cargoreg/internal/tomldoc"
)

// TableName is the top-level table holding alias => index URL pairs.
const TableName = "registries"

var tablePath = []string{TableName}

// Registries maps an alias to its index URL.
type Registries map[string]string

// Editor applies registry operations to one in-memory config document.
type Editor struct {
	doc *tomldoc.Document
}

// Load parses config file contents. Empty text is a config without
// registries.
func Load(text string) (*Editor, error) {
	doc, err := tomldoc.Parse(text)
	if err != nil {
		return nil, &BrokenConfigError{Err: err}
	}
	return New(doc), nil
}

// New wraps an already parsed document.
func New(doc *tomldoc.Document) *Editor {
	return &Editor{doc: doc}
}

// String renders the current document.
func (e *Editor) String() string {
	return e.doc.String()
}

// Add registers a new alias, creating the registries table when needed.
func (e *Editor) Add(name, url string) error {
	_, kind := e.doc.Lookup(TableName)
	switch kind {
	case tomldoc.Value:
		return &Error{Err: ErrNotATable}
	case tomldoc.Table:
		if _, k := e.doc.Lookup(TableName, name); k != tomldoc.Absent {
			return &Error{Name: name, Err: ErrAlreadyExist}
		}
		if err := e.doc.SetString(tablePath, name, url); err != nil {
			return fmt.Errorf("add registry %s: %w", name, err)
		}
		return nil
	}

	if err := e.doc.AddTable(TableName); err != nil {
		return fmt.Errorf("create registries table: %w", err)
	}
	if err := e.doc.SetString(tablePath, name, url); err != nil {
		err = fmt.Errorf("add registry %s: %w", name, err)
		if undoErr := e.doc.RemoveTable(TableName); undoErr != nil {
			return errors.Join(err, fmt.Errorf("undo create of registries table: %w", undoErr))
		}
		return err
	}
	return nil
}

// Remove deletes an alias and returns its index URL. The table goes away
// with its last entry, and so does a [registries] header left without
// entries of its own.
func (e *Editor) Remove(name string) (string, error) {
	url, err := e.Get(name)
	if err != nil {
		return "", err
	}
	if err := e.doc.Delete(tablePath, name); err != nil {
		return "", fmt.Errorf("remove registry %s: %w", name, err)
	}

	table, _ := e.doc.Lookup(TableName)
	if entries, ok := table.(map[string]any); ok && (len(entries) == 0 || e.doc.EmptyHeader(TableName)) {
		if err := e.doc.RemoveTable(TableName); err != nil {
			return "", fmt.Errorf("remove empty registries table: %w", err)
		}
	}
	return url, nil
}

// Rename moves an alias to a new name. The entry is re-added at the end of
// the table; nothing changes if the new name is taken.
func (e *Editor) Rename(oldName, newName string) error {
	url, err := e.Get(oldName)
	if err != nil {
		return err
	}
	if err := e.Add(newName, url); err != nil {
		return err
	}
	if _, err := e.Remove(oldName); err != nil {
		if _, undoErr := e.Remove(newName); undoErr != nil {
			return errors.Join(err, fmt.Errorf("undo add of %s: %w", newName, undoErr))
		}
		return err
	}
	return nil
}

// Get returns the index URL of an alias.
func (e *Editor) Get(name string) (string, error) {
	table, err := e.table()
	if err != nil {
		return "", err
	}
	value, ok := table[name]
	if !ok {
		return "", &Error{Name: name, Err: ErrNoSuchRegistry}
	}
	url, ok := value.(string)
	if !ok {
		return "", &Error{Name: name, Err: ErrNotAString}
	}
	return url, nil
}

// Set replaces the index URL of an existing alias and returns the old one.
func (e *Editor) Set(name, url string) (string, error) {
	old, err := e.Get(name)
	if err != nil {
		return "", err
	}
	if err := e.doc.SetString(tablePath, name, url); err != nil {
		return "", fmt.Errorf("set registry %s: %w", name, err)
	}
	return old, nil
}

// List returns every alias with a string index URL. A config without a
// registries table yields an empty map.
func (e *Editor) List() Registries {
	result := Registries{}
	table, err := e.table()
	if err != nil {
		return result
	}
	for name, value := range table {
		if url, ok := value.(string); ok {
			result[name] = url
		}
	}
	return result
}

func (e *Editor) table() (map[string]any, error) {
	value, kind := e.doc.Lookup(TableName)
	if kind != tomldoc.Table {
		return nil, &Error{Err: ErrTableAbsent}
	}
	return value.(map[string]any), nil
}
