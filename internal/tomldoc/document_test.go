package tomldoc_test

import (
	"errors"
	"testing"

	"cargoreg/internal/tomldoc"
)

const richDocument = `# top comment
title = "example"   # trailing

[owner]
name = 'Tom'
dob = 1979-05-27 07:32:00-08:00

[database]
ports = [
  8000, # first
  8001,
]
data = [ ["delta", "phi"], [3.14] ]
temp_targets = { cpu = 79.5, case = 72.0 }
motd = """
Roses are "red"
[not a header]
"""
path = '''C:\Users'''

[[products]]
name = "Hammer"

[servers."alpha.beta"]
ip = "10.0.0.1"
`

func mustParse(t *testing.T, text string) *tomldoc.Document {
	t.Helper()
	doc, err := tomldoc.Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return doc
}

func TestParseRoundTrip(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"blank lines":   "\n\n",
		"rich":          richDocument,
		"no newline":    "[registries]\nmy-reg = \"http://my-reg.local/\"",
		"crlf":          "[registries]\r\nmy-reg = \"http://my-reg.local/\"\r\n",
		"indented":      "  [registries]\n\tmy-reg=\"http://my-reg.local/\"   # note\n",
		"quoted keys":   "[registries]\n\"my reg\" = \"a\"\n'lit.key' = \"b\"\n",
		"comments only": "# one\n# two\n",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			doc := mustParse(t, text)
			if got := doc.String(); got != text {
				t.Fatalf("round trip mismatch:\ngot  %q\nwant %q", got, text)
			}
		})
	}
}

func TestParseRejectsMalformedText(t *testing.T) {
	text := "[cargo-new\nvcs = \"none\n"
	doc, err := tomldoc.Parse(text)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if doc != nil {
		t.Fatal("expected no document on parse error")
	}
	var perr *tomldoc.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Line == 0 {
		t.Fatalf("expected line information, got %+v", perr)
	}
}

func TestLookup(t *testing.T) {
	doc := mustParse(t, richDocument)

	cases := []struct {
		path []string
		want tomldoc.Kind
	}{
		{nil, tomldoc.Table},
		{[]string{"owner"}, tomldoc.Table},
		{[]string{"owner", "name"}, tomldoc.Value},
		{[]string{"database", "temp_targets"}, tomldoc.Table},
		{[]string{"database", "ports"}, tomldoc.Value},
		{[]string{"servers", "alpha.beta", "ip"}, tomldoc.Value},
		{[]string{"products"}, tomldoc.Value},
		{[]string{"nope"}, tomldoc.Absent},
		{[]string{"title", "nested"}, tomldoc.Absent},
	}
	for _, tc := range cases {
		if _, got := doc.Lookup(tc.path...); got != tc.want {
			t.Errorf("Lookup(%v) kind = %s, want %s", tc.path, got, tc.want)
		}
	}

	value, _ := doc.Lookup("owner", "name")
	if value != "Tom" {
		t.Fatalf("Lookup(owner.name) = %v, want Tom", value)
	}
	value, _ = doc.Lookup("database", "motd")
	if value != "Roses are \"red\"\n[not a header]\n" {
		t.Fatalf("unexpected multi-line value %q", value)
	}
}

func TestHasHeader(t *testing.T) {
	doc := mustParse(t, richDocument)
	if !doc.HasHeader("owner") {
		t.Fatal("expected [owner] header")
	}
	if !doc.HasHeader("servers", "alpha.beta") {
		t.Fatal("expected [servers.\"alpha.beta\"] header")
	}
	if doc.HasHeader("servers") {
		t.Fatal("servers is only defined implicitly")
	}
	if doc.HasHeader("products") {
		t.Fatal("array tables are not standard headers")
	}
}

func TestSetStringUpdatesValueInPlace(t *testing.T) {
	doc := mustParse(t, "[registries]\nmy-reg   =   \"http://a/\" # primary\nother = \"x\"\n")
	if err := doc.SetString([]string{"registries"}, "my-reg", "http://b/"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	want := "[registries]\nmy-reg   =   \"http://b/\" # primary\nother = \"x\"\n"
	if got := doc.String(); got != want {
		t.Fatalf("unexpected document:\ngot  %q\nwant %q", got, want)
	}
}

func TestSetStringAppendsAfterLastEntry(t *testing.T) {
	doc := mustParse(t, "[registries]\na = \"1\"\n\n[other]\nk = 1\n")
	if err := doc.SetString([]string{"registries"}, "b", "2"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	want := "[registries]\na = \"1\"\nb = \"2\"\n\n[other]\nk = 1\n"
	if got := doc.String(); got != want {
		t.Fatalf("unexpected document:\ngot  %q\nwant %q", got, want)
	}
	if value, kind := doc.Lookup("registries", "b"); kind != tomldoc.Value || value != "2" {
		t.Fatalf("Lookup after insert = %v (%s)", value, kind)
	}
}

func TestSetStringTerminatesLastLine(t *testing.T) {
	doc := mustParse(t, "[registries]")
	if err := doc.SetString([]string{"registries"}, "b", "2"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	if got, want := doc.String(), "[registries]\nb = \"2\"\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSetStringAfterMultiLineValues(t *testing.T) {
	text := "[registries]\nlist = [\n  1,\n\n  # gap\n  2,\n]\nnote = \"\"\"\n\n[x]\n\"\"\"\n\n[other]\n"
	doc := mustParse(t, text)
	if got := doc.String(); got != text {
		t.Fatalf("round trip mismatch: %q", got)
	}
	if err := doc.SetString([]string{"registries"}, "a", "1"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	want := "[registries]\nlist = [\n  1,\n\n  # gap\n  2,\n]\nnote = \"\"\"\n\n[x]\n\"\"\"\na = \"1\"\n\n[other]\n"
	if got := doc.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSetStringRootTable(t *testing.T) {
	doc := mustParse(t, "x = 1\n\n[t]\n")
	if err := doc.SetString(nil, "y", "v"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	if got, want := doc.String(), "x = 1\ny = \"v\"\n\n[t]\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSetStringQuotesKeysAndValues(t *testing.T) {
	doc := mustParse(t, "[registries]\n")
	if err := doc.SetString([]string{"registries"}, "my reg", "a\"b\\c\td"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	want := "[registries]\n\"my reg\" = \"a\\\"b\\\\c\\td\"\n"
	if got := doc.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	value, _ := doc.Lookup("registries", "my reg")
	if value != "a\"b\\c\td" {
		t.Fatalf("decoded value = %q", value)
	}

	// The quoted key is found again on the next edit.
	if err := doc.SetString([]string{"registries"}, "my reg", "z"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	if got, want := doc.String(), "[registries]\n\"my reg\" = \"z\"\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSetStringKeepsCRLF(t *testing.T) {
	doc := mustParse(t, "[registries]\r\na = \"1\"\r\n")
	if err := doc.SetString([]string{"registries"}, "b", "2"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	if got, want := doc.String(), "[registries]\r\na = \"1\"\r\nb = \"2\"\r\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSetStringInlineTable(t *testing.T) {
	doc := mustParse(t, "registries = { a = \"1\" } # inline\n")
	if _, kind := doc.Lookup("registries"); kind != tomldoc.Table {
		t.Fatalf("inline table kind = %s", kind)
	}

	if err := doc.SetString([]string{"registries"}, "b", "2"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	if got, want := doc.String(), "registries = { a = \"1\", b = \"2\" } # inline\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	if err := doc.SetString([]string{"registries"}, "a", "9"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	if got, want := doc.String(), "registries = { a = \"9\", b = \"2\" } # inline\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if value, _ := doc.Lookup("registries", "b"); value != "2" {
		t.Fatalf("Lookup(registries.b) = %v", value)
	}
}

func TestSetStringEmptyInlineTable(t *testing.T) {
	doc := mustParse(t, "registries = {}\n")
	if err := doc.SetString([]string{"registries"}, "a", "1"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	if got, want := doc.String(), "registries = { a = \"1\" }\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSetStringDottedKeys(t *testing.T) {
	doc := mustParse(t, "registries.a = \"1\"\nother = 1\n\n[t]\n")
	if err := doc.SetString([]string{"registries"}, "b", "2"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	if err := doc.SetString([]string{"registries"}, "a", "9"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	want := "registries.a = \"9\"\nregistries.b = \"2\"\nother = 1\n\n[t]\n"
	if got := doc.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSetStringImplicitTable(t *testing.T) {
	doc := mustParse(t, "[registries.crates-io]\nprotocol = \"sparse\"\n")
	if doc.HasHeader("registries") {
		t.Fatal("registries is only defined implicitly")
	}
	if err := doc.SetString([]string{"registries"}, "a", "1"); err != nil {
		t.Fatalf("SetString returned error: %v", err)
	}
	want := "[registries.crates-io]\nprotocol = \"sparse\"\n\n[registries]\na = \"1\"\n"
	if got := doc.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if value, _ := doc.Lookup("registries", "crates-io", "protocol"); value != "sparse" {
		t.Fatalf("subtable lost, protocol = %v", value)
	}
}

func TestSetStringMissingTable(t *testing.T) {
	text := "x = 1\n"
	doc := mustParse(t, text)
	if err := doc.SetString([]string{"registries"}, "a", "1"); !errors.Is(err, tomldoc.ErrNoTable) {
		t.Fatalf("expected ErrNoTable, got %v", err)
	}
	if err := doc.SetString([]string{"x"}, "a", "1"); !errors.Is(err, tomldoc.ErrNoTable) {
		t.Fatalf("expected ErrNoTable for a scalar, got %v", err)
	}
	if doc.String() != text {
		t.Fatalf("document changed: %q", doc.String())
	}
}

func TestSetStringRollsBackInvalidEdit(t *testing.T) {
	text := "[t]\n\n[t.b]\nc = 1\n"
	doc := mustParse(t, text)
	if err := doc.SetString([]string{"t"}, "b", "v"); err == nil {
		t.Fatal("expected error when a string would shadow a table")
	}
	if doc.String() != text {
		t.Fatalf("document changed: %q", doc.String())
	}
	if _, kind := doc.Lookup("t", "b"); kind != tomldoc.Table {
		t.Fatalf("decoded data changed, t.b kind = %s", kind)
	}
}

func TestDelete(t *testing.T) {
	doc := mustParse(t, "[registries]\na = \"1\" # first\nb = \"2\"\n")
	if err := doc.Delete([]string{"registries"}, "a"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if got, want := doc.String(), "[registries]\nb = \"2\"\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if _, kind := doc.Lookup("registries", "a"); kind != tomldoc.Absent {
		t.Fatalf("deleted key kind = %s", kind)
	}

	err := doc.Delete([]string{"registries"}, "missing")
	if !errors.Is(err, tomldoc.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestAddTable(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "[registries]\n"},
		{"no trailing newline", "a = 1", "a = 1\n\n[registries]\n"},
		{"trailing newline", "a = 1\n", "a = 1\n\n[registries]\n"},
		{"trailing blank line", "a = 1\n\n", "a = 1\n\n[registries]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := mustParse(t, tc.in)
			if err := doc.AddTable("registries"); err != nil {
				t.Fatalf("AddTable returned error: %v", err)
			}
			if got := doc.String(); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
			if _, kind := doc.Lookup("registries"); kind != tomldoc.Table {
				t.Fatalf("new table kind = %s", kind)
			}
		})
	}
}

func TestAddTableRejectsExistingKey(t *testing.T) {
	doc := mustParse(t, "registries = \"oops\"\n")
	if err := doc.AddTable("registries"); !errors.Is(err, tomldoc.ErrKeyExists) {
		t.Fatalf("expected ErrKeyExists, got %v", err)
	}
}

func TestRemoveTable(t *testing.T) {
	doc := mustParse(t, "[a]\nk = 1\n\n# registries\n[registries]\nx = \"1\"\n\n[other]\nv = 2\n")
	if err := doc.RemoveTable("registries"); err != nil {
		t.Fatalf("RemoveTable returned error: %v", err)
	}
	if got, want := doc.String(), "[a]\nk = 1\n\n[other]\nv = 2\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if _, kind := doc.Lookup("registries"); kind != tomldoc.Absent {
		t.Fatalf("removed table kind = %s", kind)
	}
	if err := doc.RemoveTable("registries"); !errors.Is(err, tomldoc.ErrNoTable) {
		t.Fatalf("expected ErrNoTable, got %v", err)
	}
}

func TestAddThenRemoveTableRestoresDocument(t *testing.T) {
	for _, text := range []string{"", "a = 1", "a = 1\n", "a = 1\n\n", "[t]\nk = 1", "# c\n[t]\nk = \"v\"\n", "x = 1\n# end\n"} {
		doc := mustParse(t, text)
		if err := doc.AddTable("registries"); err != nil {
			t.Fatalf("AddTable returned error: %v", err)
		}
		if err := doc.SetString([]string{"registries"}, "x", "y"); err != nil {
			t.Fatalf("SetString returned error: %v", err)
		}
		if err := doc.Delete([]string{"registries"}, "x"); err != nil {
			t.Fatalf("Delete returned error: %v", err)
		}
		if err := doc.RemoveTable("registries"); err != nil {
			t.Fatalf("RemoveTable returned error: %v", err)
		}
		if got := doc.String(); got != text {
			t.Fatalf("got %q want %q", got, text)
		}
	}
}

func TestDeleteInlineTable(t *testing.T) {
	cases := []struct {
		name string
		key  string
		want string
	}{
		{"first", "a", "r = { b = \"2\", c = \"3\" }\n"},
		{"middle", "b", "r = { a = \"1\", c = \"3\" }\n"},
		{"last", "c", "r = { a = \"1\", b = \"2\" }\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := mustParse(t, "r = { a = \"1\", b = \"2\", c = \"3\" }\n")
			if err := doc.Delete([]string{"r"}, tc.key); err != nil {
				t.Fatalf("Delete returned error: %v", err)
			}
			if got := doc.String(); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}

	doc := mustParse(t, "r = { a = \"1\" }\n")
	if err := doc.Delete([]string{"r"}, "a"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if got, want := doc.String(), "r = {}\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if err := doc.Delete([]string{"r"}, "a"); !errors.Is(err, tomldoc.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestDeleteDottedKey(t *testing.T) {
	doc := mustParse(t, "r.a = \"1\"\nr.b = \"2\"\n")
	if err := doc.Delete([]string{"r"}, "a"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if got, want := doc.String(), "r.b = \"2\"\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRemoveTableOtherLayouts(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"inline", "x = 1\nregistries = {}\ny = 2\n", "x = 1\ny = 2\n"},
		{"dotted", "registries.a = \"1\"\nx = 1\nregistries.b = \"2\"\n", "x = 1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := mustParse(t, tc.in)
			if err := doc.RemoveTable("registries"); err != nil {
				t.Fatalf("RemoveTable returned error: %v", err)
			}
			if got := doc.String(); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestEmptyHeader(t *testing.T) {
	doc := mustParse(t, "[a]\n# nothing\n\n[b]\nk = 1\n")
	if !doc.EmptyHeader("a") {
		t.Fatal("expected [a] to be empty")
	}
	if doc.EmptyHeader("b") {
		t.Fatal("expected [b] to hold an entry")
	}
	if doc.EmptyHeader("c") {
		t.Fatal("a missing header is not empty")
	}
}

func TestAddThenRemoveInAllLayouts(t *testing.T) {
	texts := []string{
		"registries = { a = \"1\" }",
		"registries = {}\n",
		"registries.a = \"1\"",
		"registries.a = \"1\"\n# tail\n",
		"[registries.crates-io]\nprotocol = \"sparse\"\n",
		"[registries.crates-io]\nprotocol = \"sparse\"",
	}
	for _, text := range texts {
		doc := mustParse(t, text)
		if err := doc.SetString([]string{"registries"}, "fresh", "v"); err != nil {
			t.Fatalf("SetString(%q) returned error: %v", text, err)
		}
		if err := doc.Delete([]string{"registries"}, "fresh"); err != nil {
			t.Fatalf("Delete(%q) returned error: %v", text, err)
		}
		if doc.EmptyHeader("registries") {
			if err := doc.RemoveTable("registries"); err != nil {
				t.Fatalf("RemoveTable(%q) returned error: %v", text, err)
			}
		}
		if got := doc.String(); got != text {
			t.Fatalf("got %q want %q", got, text)
		}
	}
}
