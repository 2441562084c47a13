// Package searchdata reads and writes the JavaScript search index files
// Doxygen generates under search/: the per-letter "var searchData=[...]"
// tables and the searchdata.js manifest that lists them.
package searchdata

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/symdex"
)

// DataVar is the variable every data file assigns its table to.
const DataVar = "searchData"

// ManifestFile is the name of the manifest within the search directory.
const ManifestFile = "searchdata.js"

// Manifest variables, keyed by section number.
const (
	varSectionsWithContent = "indexSectionsWithContent"
	varSectionNames        = "indexSectionNames"
	varSectionLabels       = "indexSectionLabels"
)

// Option configures decoding.
type Option func(*options)

type options struct {
	source string
}

// WithSource names the input in parse errors, e.g. a file name or URL.
func WithSource(name string) Option {
	return func(o *options) {
		o.source = name
	}
}

func newScannerFrom(r io.Reader, opts []Option) (*scanner, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read search data: %w", err)
	}
	return newScanner(o.source, data), nil
}

// Decode parses one data file into its entries, in table order.
//
// The file holds a single declaration, "var searchData=[...];", with one
// record per key shaped [key, [label, [url, flag, owner], ...]]. A malformed
// record, an out-of-range flag, an empty field or a repeated key fails with
// a *symdex.ParseError naming the record's position. An empty table yields
// no entries and no error.
func Decode(r io.Reader, opts ...Option) ([]*symdex.Entry, error) {
	s, err := newScannerFrom(r, opts)
	if err != nil {
		return nil, err
	}

	name, err := s.declaration()
	if err != nil {
		return nil, err
	}
	if name != DataVar {
		return nil, s.errorf(s.pos, "expected %s declaration, found %q", DataVar, name)
	}

	if s.peek() != '[' {
		return nil, s.errorf(s.pos, "expected table, found %s", s.describe())
	}
	table, err := s.parseTable()
	if err != nil {
		return nil, err
	}
	s.terminator()
	if s.peek() != 0 {
		return nil, s.errorf(s.pos, "unexpected %s after table", s.describe())
	}

	entries := make([]*symdex.Entry, 0, len(table.items))
	seen := make(map[string]int, len(table.items))
	for i, rec := range table.items {
		s.entry = i
		e, err := s.record(rec)
		if err != nil {
			return nil, err
		}
		if first, ok := seen[e.Key]; ok {
			return nil, s.errorf(rec.off, "duplicate key %q, first defined by entry %d", e.Key, first)
		}
		seen[e.Key] = i
		entries = append(entries, e)
	}
	return entries, nil
}

// Load decodes a data file into an Index.
func Load(r io.Reader, opts ...Option) (*symdex.Index, error) {
	entries, err := Decode(r, opts...)
	if err != nil {
		return nil, err
	}
	return symdex.NewIndex(entries)
}

// parseTable reads the top-level array, tracking the record being scanned
// so syntax errors carry its position.
func (s *scanner) parseTable() (value, error) {
	v, err := s.parseArrayWith(func(i int) { s.entry = i })
	s.entry = -1
	return v, err
}

// record interprets [key, [label, ref...]].
func (s *scanner) record(v value) (*symdex.Entry, error) {
	if v.kind != kindArray || len(v.items) != 2 {
		return nil, s.errorf(v.off, "record must be a [key, [label, references...]] pair")
	}
	key, body := v.items[0], v.items[1]
	if key.kind != kindString || key.str == "" {
		return nil, s.errorf(key.off, "record key must be a non-empty string")
	}
	if body.kind != kindArray || len(body.items) == 0 {
		return nil, s.errorf(body.off, "record %q must hold [label, references...]", key.str)
	}
	label := body.items[0]
	if label.kind != kindString || label.str == "" {
		return nil, s.errorf(label.off, "record %q label must be a non-empty string", key.str)
	}
	if len(body.items) < 2 {
		return nil, s.errorf(body.off, "record %q has no references", key.str)
	}

	e := &symdex.Entry{
		Key:        key.str,
		Label:      label.str,
		References: make([]symdex.Reference, 0, len(body.items)-1),
	}
	for _, rv := range body.items[1:] {
		ref, err := s.reference(e.Key, label.str, rv)
		if err != nil {
			return nil, err
		}
		e.References = append(e.References, ref)
	}
	return e, nil
}

// reference interprets [url, flag, owner].
func (s *scanner) reference(key, label string, v value) (symdex.Reference, error) {
	if v.kind != kindArray || len(v.items) != 3 {
		return symdex.Reference{}, s.errorf(v.off, "record %q reference must be [url, flag, owner]", key)
	}
	url, flag, owner := v.items[0], v.items[1], v.items[2]
	if url.kind != kindString {
		return symdex.Reference{}, s.errorf(url.off, "record %q reference url must be a string, found %s", key, url.kind)
	}
	if flag.kind != kindNumber || (flag.num != 0 && flag.num != 1) {
		return symdex.Reference{}, s.errorf(flag.off, "record %q reference flag must be 0 or 1", key)
	}
	if owner.kind != kindString {
		return symdex.Reference{}, s.errorf(owner.off, "record %q reference owner must be a string, found %s", key, owner.kind)
	}
	return symdex.Reference{
		Label:    label,
		URL:      url.str,
		Relative: flag.num == 1,
		Owner:    owner.str,
	}, nil
}

// DecodeManifest parses a searchdata.js manifest. Sections are returned in
// section number order. Declarations other than the three section tables
// are skipped.
func DecodeManifest(r io.Reader, opts ...Option) (*symdex.Manifest, error) {
	s, err := newScannerFrom(r, opts)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]*symdex.Section)
	section := func(id int) *symdex.Section {
		sec, ok := byID[id]
		if !ok {
			sec = &symdex.Section{ID: id}
			byID[id] = sec
		}
		return sec
	}

	var sawNames bool
	for s.peek() != 0 {
		name, err := s.declaration()
		if err != nil {
			return nil, err
		}
		v, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		s.terminator()

		var set func(sec *symdex.Section, val string)
		switch name {
		case varSectionsWithContent:
			set = func(sec *symdex.Section, val string) { sec.Letters = val }
		case varSectionNames:
			sawNames = true
			set = func(sec *symdex.Section, val string) { sec.Name = val }
		case varSectionLabels:
			set = func(sec *symdex.Section, val string) { sec.Label = val }
		default:
			continue
		}

		if v.kind != kindObject {
			return nil, s.errorf(v.off, "%s must be an object", name)
		}
		for _, f := range v.fields {
			id, err := strconv.Atoi(f.key)
			if err != nil || id < 0 {
				return nil, s.errorf(f.val.off, "%s key %q is not a section number", name, f.key)
			}
			if f.val.kind != kindString {
				return nil, s.errorf(f.val.off, "%s[%d] must be a string", name, id)
			}
			set(section(id), f.val.str)
		}
	}

	if !sawNames {
		return nil, s.errorf(s.pos, "missing %s declaration", varSectionNames)
	}

	m := &symdex.Manifest{Sections: make([]symdex.Section, 0, len(byID))}
	for _, sec := range byID {
		if sec.Name == "" {
			return nil, s.errorf(0, "section %d has no name", sec.ID)
		}
		if sec.Label == "" {
			sec.Label = sec.Name
		}
		m.Sections = append(m.Sections, *sec)
	}
	sort.Slice(m.Sections, func(i, j int) bool { return m.Sections[i].ID < m.Sections[j].ID })
	return m, nil
}

// Encode writes entries in the generator's layout, so that encoding the
// entries decoded from a generated file reproduces the file byte for byte.
func Encode(w io.Writer, entries []*symdex.Entry) error {
	var b strings.Builder
	b.WriteString("var " + DataVar + "=\n[\n")
	for i, e := range entries {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString("  [")
		writeQuoted(&b, e.Key)
		b.WriteString(",[")
		writeQuoted(&b, e.Label)
		for _, ref := range e.References {
			b.WriteString(",[")
			writeQuoted(&b, ref.URL)
			if ref.Relative {
				b.WriteString(",1,")
			} else {
				b.WriteString(",0,")
			}
			writeQuoted(&b, ref.Owner)
			b.WriteByte(']')
		}
		b.WriteString("]]")
	}
	if len(entries) > 0 {
		b.WriteByte('\n')
	}
	b.WriteString("];\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// EncodeIndex writes every entry of idx. See Encode.
func EncodeIndex(w io.Writer, idx *symdex.Index) error {
	return Encode(w, idx.Entries())
}

// writeQuoted writes s single-quoted. Bytes that are not valid UTF-8 are
// copied through unchanged, as the scanner kept them.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('\'')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(s[i])
			i++
			continue
		}
		i += size
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\x%02x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
}

// EncodeManifest writes m as a searchdata.js manifest.
func EncodeManifest(w io.Writer, m *symdex.Manifest) error {
	var b strings.Builder
	writeTable := func(name string, val func(symdex.Section) string) {
		b.WriteString("var " + name + " =\n{\n")
		for i, sec := range m.Sections {
			fmt.Fprintf(&b, "  %d: %s", sec.ID, strconv.Quote(val(sec)))
			if i < len(m.Sections)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString("};\n\n")
	}
	writeTable(varSectionsWithContent, func(s symdex.Section) string { return s.Letters })
	writeTable(varSectionNames, func(s symdex.Section) string { return s.Name })
	writeTable(varSectionLabels, func(s symdex.Section) string { return s.Label })

	_, err := io.WriteString(w, b.String())
	return err
}

// Partition splits entries into per-letter data files the way the
// generator lays out a section. Letters are the distinct lowercased first
// runes of the labels in ascending order; files[i] holds, in table order,
// the entries whose label starts with the i-th letter.
func Partition(entries []*symdex.Entry) (letters string, files [][]*symdex.Entry) {
	byLetter := make(map[rune][]*symdex.Entry)
	var order []rune
	for _, e := range entries {
		r, ok := symdex.Letter(e.Label)
		if !ok {
			continue
		}
		if _, ok := byLetter[r]; !ok {
			order = append(order, r)
		}
		byLetter[r] = append(byLetter[r], e)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	files = make([][]*symdex.Entry, len(order))
	for i, r := range order {
		files[i] = byLetter[r]
	}
	return string(order), files
}
