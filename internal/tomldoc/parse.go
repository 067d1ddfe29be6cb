package tomldoc

import (
	"errors"
	"strings"

	"github.com/pelletier/go-toml/v2/unstable"
)

type chunkKind int

const (
	trivia chunkKind = iota
	header
	arrayHeader
	entry
)

// chunk is a run of whole lines holding one top-level expression, or a
// single blank/comment line.
type chunk struct {
	kind chunkKind
	raw  string
	// path is the header path for headers and the key path for entries.
	path []string
	// added marks headers created by this Document. Their raw text carries
	// the separator written in front of them.
	added bool
}

func (c chunk) isHeader() bool {
	return c.kind == header || c.kind == arrayHeader
}

func (c chunk) isBlank() bool {
	return c.kind == trivia && strings.TrimSpace(c.raw) == ""
}

var errNoEntry = errors.New("no key/value expression")

// split cuts src into chunks along the top-level expressions reported by the
// go-toml parser. Comments are kept as expressions, so only whitespace lies
// between the end of one expression and the start of the next.
func split(src string) ([]chunk, error) {
	p := unstable.Parser{KeepComments: true}
	p.Reset([]byte(src))

	type expression struct {
		kind  chunkKind
		path  []string
		start int
	}
	var exprs []expression
	for p.NextExpression() {
		node := p.Expression()
		switch node.Kind {
		case unstable.Comment:
			exprs = append(exprs, expression{kind: trivia, start: int(node.Raw.Offset)})
		case unstable.Table, unstable.ArrayTable:
			kind := header
			if node.Kind == unstable.ArrayTable {
				kind = arrayHeader
			}
			path, start := keyPath(node.Key())
			exprs = append(exprs, expression{kind: kind, path: path, start: start})
		case unstable.KeyValue:
			path, start := keyPath(node.Key())
			exprs = append(exprs, expression{kind: entry, path: path, start: start})
		}
	}
	if err := p.Error(); err != nil {
		return nil, &ParseError{Err: err}
	}

	var chunks []chunk
	pos := 0
	for i, e := range exprs {
		begin := lineStart(src, e.start)
		chunks = appendBlankLines(chunks, src[pos:begin])

		limit := len(src)
		if i+1 < len(exprs) {
			limit = lineStart(src, exprs[i+1].start)
		}
		end := lineEnd(src, lastNonSpace(src, begin, limit))
		chunks = append(chunks, chunk{kind: e.kind, raw: src[begin:end], path: e.path})
		pos = end
	}
	return appendBlankLines(chunks, src[pos:]), nil
}

// keyPath decodes a (possibly dotted) key and returns the offset of its first
// segment.
func keyPath(it unstable.Iterator) ([]string, int) {
	var path []string
	start := -1
	for it.Next() {
		key := it.Node()
		if start < 0 {
			start = int(key.Raw.Offset)
		}
		path = append(path, string(key.Data))
	}
	return path, start
}

// keyEnd returns the offset right after the last segment of a key.
func keyEnd(it unstable.Iterator) int {
	end := 0
	for it.Next() {
		raw := it.Node().Raw
		end = int(raw.Offset + raw.Length)
	}
	return end
}

func appendBlankLines(chunks []chunk, text string) []chunk {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line != "" {
			chunks = append(chunks, chunk{kind: trivia, raw: line})
		}
	}
	return chunks
}

func lineStart(s string, offset int) int {
	return strings.LastIndexByte(s[:offset], '\n') + 1
}

// lineEnd returns the offset just past the newline ending the line that
// holds offset.
func lineEnd(s string, offset int) int {
	if i := strings.IndexByte(s[offset:], '\n'); i >= 0 {
		return offset + i + 1
	}
	return len(s)
}

// lastNonSpace returns the index of the last non-whitespace byte in
// s[from:to], or from-1 when there is none.
func lastNonSpace(s string, from, to int) int {
	i := to - 1
	for i >= from && strings.IndexByte(" \t\r\n", s[i]) >= 0 {
		i--
	}
	return i
}

// entryShape locates the value of a key/value chunk. For inline tables it
// also locates each inner pair.
type entryShape struct {
	valStart int
	valEnd   int
	inline   bool
	items    []inlineItem
}

type inlineItem struct {
	path     []string
	start    int
	valStart int
	valEnd   int
}

// item returns the index of the single-segment inner key, or -1.
func (s entryShape) item(key string) int {
	for i, it := range s.items {
		if len(it.path) == 1 && it.path[0] == key {
			return i
		}
	}
	return -1
}

// parseEntry re-parses the raw text of one entry chunk.
func parseEntry(raw string) (entryShape, error) {
	p := unstable.Parser{KeepComments: true}
	p.Reset([]byte(raw))
	for p.NextExpression() {
		node := p.Expression()
		if node.Kind != unstable.KeyValue {
			continue
		}

		shape := entryShape{valStart: valueStart(raw, keyEnd(node.Key()))}
		end := len(raw)
		if c := node.Next(); c != nil && c.Kind == unstable.Comment {
			end = int(c.Raw.Offset)
		}
		shape.valEnd = lastNonSpace(raw, shape.valStart, end) + 1

		if value := node.Value(); value.Kind == unstable.InlineTable {
			shape.inline = true
			it := value.Children()
			for it.Next() {
				kv := it.Node()
				path, start := keyPath(kv.Key())
				shape.items = append(shape.items, inlineItem{
					path:     path,
					start:    start,
					valStart: valueStart(raw, keyEnd(kv.Key())),
				})
			}
			closing := shape.valEnd - 1
			for i := range shape.items {
				limit := closing
				if i+1 < len(shape.items) {
					// Only whitespace sits between the separator and the next key.
					limit = strings.LastIndexByte(raw[:shape.items[i+1].start], ',')
				}
				shape.items[i].valEnd = lastNonSpace(raw, shape.items[i].valStart, limit) + 1
			}
		}
		return shape, nil
	}
	if err := p.Error(); err != nil {
		return entryShape{}, &ParseError{Err: err}
	}
	return entryShape{}, errNoEntry
}

// valueStart skips the `=` separator that follows a key ending at offset.
func valueStart(raw string, offset int) int {
	i := offset
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t' || raw[i] == '=') {
		i++
	}
	return i
}

// setInline sets key to value inside an inline table entry.
func setInline(raw string, shape entryShape, key, value string) string {
	if i := shape.item(key); i >= 0 {
		it := shape.items[i]
		return raw[:it.valStart] + value + raw[it.valEnd:]
	}
	pair := formatKey(key) + " = " + value
	if len(shape.items) == 0 {
		return raw[:shape.valStart] + "{ " + pair + " }" + raw[shape.valEnd:]
	}
	last := shape.items[len(shape.items)-1]
	return raw[:last.valEnd] + ", " + pair + raw[last.valEnd:]
}

// deleteInline removes key from an inline table entry.
func deleteInline(raw string, shape entryShape, key string) (string, bool) {
	i := shape.item(key)
	switch {
	case i < 0:
		return raw, false
	case len(shape.items) == 1:
		return raw[:shape.valStart] + "{}" + raw[shape.valEnd:], true
	case i == len(shape.items)-1:
		return raw[:shape.items[i-1].valEnd] + raw[shape.items[i].valEnd:], true
	}
	return raw[:shape.items[i].start] + raw[shape.items[i+1].start:], true
}
