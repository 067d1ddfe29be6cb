package tomldoc

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Kind classifies what a path resolves to.
type Kind int

const (
	// Absent means nothing is defined at the path.
	Absent Kind = iota
	// Value means the path holds a non-table value (string, number, array, ...).
	Value
	// Table means the path holds a table.
	Table
)

func (k Kind) String() string {
	switch k {
	case Value:
		return "value"
	case Table:
		return "table"
	default:
		return "absent"
	}
}

// Document is a parsed TOML document that serializes back to its original
// text apart from the edits applied to it.
type Document struct {
	chunks []chunk
	data   map[string]any
}

// Parse validates text and splits it into editable chunks. Empty text yields
// an empty document.
func Parse(text string) (*Document, error) {
	data, err := decode(text)
	if err != nil {
		return nil, err
	}
	chunks, err := split(text)
	if err != nil {
		return nil, err
	}
	return &Document{chunks: chunks, data: data}, nil
}

func decode(text string) (map[string]any, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(text), &data); err != nil {
		perr := &ParseError{Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

// String renders the document.
func (d *Document) String() string {
	var b strings.Builder
	for _, c := range d.chunks {
		b.WriteString(c.raw)
	}
	return b.String()
}

// Lookup resolves a key path against the decoded document. An empty path
// resolves to the root table.
func (d *Document) Lookup(path ...string) (any, Kind) {
	var current any = d.data
	for _, key := range path {
		table, ok := current.(map[string]any)
		if !ok {
			return nil, Absent
		}
		current, ok = table[key]
		if !ok {
			return nil, Absent
		}
	}
	if _, ok := current.(map[string]any); ok {
		return current, Table
	}
	return current, Value
}

// HasHeader reports whether the document declares path with a [header].
func (d *Document) HasHeader(path ...string) bool {
	return d.headerIndex(path) >= 0
}

// SetString assigns a string value to key inside table, whatever layout
// defines the table: a [header], dotted keys, an inline table, or only
// [table.sub] headers, in which case a [table] header is appended. An
// existing entry keeps its line and only the value is replaced; a new entry
// follows the last entry of the table. An empty table path addresses the
// root.
func (d *Document) SetString(table []string, key, value string) error {
	full := append(slices.Clone(table), key)
	quoted := quoteString(value)
	prev := slices.Clone(d.chunks)

	if i := d.findEntry(full); i >= 0 {
		shape, err := parseEntry(d.chunks[i].raw)
		if err != nil {
			return err
		}
		raw := d.chunks[i].raw
		d.chunks[i].raw = raw[:shape.valStart] + quoted + raw[shape.valEnd:]
		return d.commit(prev)
	}

	if len(table) > 0 {
		if i := d.findEntry(table); i >= 0 {
			shape, err := parseEntry(d.chunks[i].raw)
			if err != nil {
				return err
			}
			if !shape.inline {
				return fmt.Errorf("%w: %s", ErrNoTable, formatPath(table))
			}
			d.chunks[i].raw = setInline(d.chunks[i].raw, shape, key, quoted)
			return d.commit(prev)
		}
	}

	if len(table) == 0 || d.headerIndex(table) >= 0 {
		first, end := d.bounds(table)
		at := first
		for i := first; i < end; i++ {
			if d.chunks[i].kind == entry {
				at = i + 1
			}
		}
		d.insertEntry(at, []string{key}, quoted)
		return d.commit(prev)
	}

	if i, section := d.lastDotted(table); i >= 0 {
		d.insertEntry(i+1, append(slices.Clone(table[len(section):]), key), quoted)
		return d.commit(prev)
	}

	if _, kind := d.Lookup(table...); kind != Table {
		return fmt.Errorf("%w: %s", ErrNoTable, formatPath(table))
	}
	h := d.appendHeader(table)
	d.insertEntry(h+1, []string{key}, quoted)
	return d.commit(prev)
}

// Delete removes key from table: the line(s) holding it, or the pair inside
// an inline table.
func (d *Document) Delete(table []string, key string) error {
	full := append(slices.Clone(table), key)
	prev := slices.Clone(d.chunks)

	if i := d.findEntry(full); i >= 0 {
		d.chunks = slices.Delete(d.chunks, i, i+1)
		return d.commit(prev)
	}
	if len(table) > 0 {
		if i := d.findEntry(table); i >= 0 {
			shape, err := parseEntry(d.chunks[i].raw)
			if err != nil {
				return err
			}
			if raw, ok := deleteInline(d.chunks[i].raw, shape, key); ok {
				d.chunks[i].raw = raw
				return d.commit(prev)
			}
		}
	}
	return fmt.Errorf("%w: %s", ErrKeyNotFound, formatPath(full))
}

// AddTable appends an empty [path] header at the end of the document,
// separated from earlier content by a blank line.
func (d *Document) AddTable(path ...string) error {
	if _, kind := d.Lookup(path...); kind != Absent {
		return fmt.Errorf("%w: %s", ErrKeyExists, formatPath(path))
	}
	prev := slices.Clone(d.chunks)
	d.appendHeader(path)
	return d.commit(prev)
}

// RemoveTable drops every definition of path: a [path] header with its
// entries, an inline table entry, or dotted keys below path. For parsed
// headers the blank or comment lines directly above go too; lines following
// the last entry are left for whatever comes next. Headers created by
// AddTable take back exactly what AddTable wrote.
func (d *Document) RemoveTable(path ...string) error {
	prev := slices.Clone(d.chunks)

	if h := d.headerIndex(path); h >= 0 {
		end := h + 1
		for i := h + 1; i < len(d.chunks) && !d.chunks[i].isHeader(); i++ {
			if d.chunks[i].kind == entry {
				end = i + 1
			}
		}
		start := h
		if !d.chunks[h].added {
			for start > 0 && d.chunks[start-1].kind == trivia && !d.chunks[start-1].isBlank() {
				start--
			}
			for start > 0 && d.chunks[start-1].isBlank() {
				start--
			}
		}
		d.chunks = slices.Delete(d.chunks, start, end)
		return d.commit(prev)
	}

	if _, kind := d.Lookup(path...); kind != Table {
		return fmt.Errorf("%w: %s", ErrNoTable, formatPath(path))
	}
	if i := d.findEntry(path); i >= 0 {
		d.chunks = slices.Delete(d.chunks, i, i+1)
		return d.commit(prev)
	}
	removed := false
	paths, ok := d.sections()
	for i := len(d.chunks) - 1; i >= 0; i-- {
		if d.isDottedBelow(i, path, paths, ok) {
			d.chunks = slices.Delete(d.chunks, i, i+1)
			removed = true
		}
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrNoTable, formatPath(path))
	}
	return d.commit(prev)
}

// EmptyHeader reports whether a [path] header exists without any entries
// below it.
func (d *Document) EmptyHeader(path ...string) bool {
	h := d.headerIndex(path)
	if h < 0 {
		return false
	}
	first, end := d.bounds(path)
	for i := first; i < end; i++ {
		if d.chunks[i].kind == entry {
			return false
		}
	}
	return true
}

// headerIndex returns the chunk index of the [path] header, or -1.
func (d *Document) headerIndex(path []string) int {
	for i, c := range d.chunks {
		if c.kind == header && slices.Equal(c.path, path) {
			return i
		}
	}
	return -1
}

// bounds returns the chunk range holding the direct entries of the root
// table or of an existing [table] header.
func (d *Document) bounds(table []string) (int, int) {
	first := 0
	if len(table) > 0 {
		first = d.headerIndex(table) + 1
	}
	end := first
	for end < len(d.chunks) && !d.chunks[end].isHeader() {
		end++
	}
	return first, end
}

// sections returns, for every chunk, the path of the table its entries
// belong to. Chunks inside an array of tables map to nil with ok false.
func (d *Document) sections() ([][]string, []bool) {
	paths := make([][]string, len(d.chunks))
	ok := make([]bool, len(d.chunks))
	var current []string
	editable := true
	for i, c := range d.chunks {
		switch c.kind {
		case header:
			current, editable = c.path, true
		case arrayHeader:
			current, editable = nil, false
		}
		paths[i], ok[i] = current, editable
	}
	return paths, ok
}

// findEntry returns the index of the entry whose absolute key path is full,
// or -1.
func (d *Document) findEntry(full []string) int {
	paths, ok := d.sections()
	for i, c := range d.chunks {
		if c.kind == entry && ok[i] && slices.Equal(slices.Concat(paths[i], c.path), full) {
			return i
		}
	}
	return -1
}

// isDottedBelow reports whether chunk i is a dotted-key entry defining a
// value below table from outside a [table] header.
func (d *Document) isDottedBelow(i int, table []string, paths [][]string, ok []bool) bool {
	c := d.chunks[i]
	if c.kind != entry || !ok[i] || len(paths[i]) >= len(table) {
		return false
	}
	full := slices.Concat(paths[i], c.path)
	return len(full) > len(table) && slices.Equal(full[:len(table)], table)
}

// lastDotted returns the last entry defining table through dotted keys and
// the path of the section holding it, or -1.
func (d *Document) lastDotted(table []string) (int, []string) {
	paths, ok := d.sections()
	for i := len(d.chunks) - 1; i >= 0; i-- {
		if d.isDottedBelow(i, table, paths, ok) {
			return i, paths[i]
		}
	}
	return -1, nil
}

// insertEntry places `path = value` at index at. After an unterminated last
// line the new entry brings its own line break, so deleting it restores the
// text exactly.
func (d *Document) insertEntry(at int, path []string, value string) {
	nl := d.newline()
	line := formatPath(path) + " = " + value
	if at > 0 && !strings.HasSuffix(d.chunks[at-1].raw, "\n") {
		line = nl + line
	} else {
		line += nl
	}
	d.chunks = slices.Insert(d.chunks, at, chunk{kind: entry, raw: line, path: path})
}

// appendHeader adds a [path] header at the end and returns its index. The
// line break and blank separator it needs are part of the header chunk.
func (d *Document) appendHeader(path []string) int {
	nl := d.newline()
	lead := ""
	if n := len(d.chunks); n > 0 {
		last := d.chunks[n-1]
		if !strings.HasSuffix(last.raw, "\n") {
			lead = nl
		}
		if !last.isBlank() {
			lead += nl
		}
	}
	d.chunks = append(d.chunks, chunk{
		kind:  header,
		raw:   lead + "[" + formatPath(path) + "]" + nl,
		path:  slices.Clone(path),
		added: true,
	})
	return len(d.chunks) - 1
}

// newline returns the line ending the document already uses.
func (d *Document) newline() string {
	for _, c := range d.chunks {
		if strings.HasSuffix(c.raw, "\r\n") {
			return "\r\n"
		}
		if strings.HasSuffix(c.raw, "\n") {
			return "\n"
		}
	}
	return "\n"
}

// commit re-validates the edited text and restores prev when the edit broke
// the document.
func (d *Document) commit(prev []chunk) error {
	data, err := decode(d.String())
	if err != nil {
		d.chunks = prev
		return fmt.Errorf("edit produced invalid toml: %w", err)
	}
	d.data = data
	return nil
}
