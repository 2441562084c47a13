// Package tagfile builds symbol indexes from Doxygen XML tag files, the
// cross-referencing format documentation sites publish alongside their
// HTML. It yields the same entries the generator writes to search/*.js.
package tagfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/symdex"
)

// skippedKinds are compounds that never appear in the symbol search.
var skippedKinds = map[string]bool{
	"dir":  true,
	"page": true,
}

// Decode reads a tag file and returns its entries in document order.
// URLs are formed as baseURL + anchorfile + "#" + anchor.
//
// Owners follow the generator: an entry with a single reference names only
// the declaring scope, while entries with several references spell out
// scope::member(), using the argument list when the member is overloaded
// within its scope.
func Decode(r io.Reader, baseURL string) ([]*symdex.Entry, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, &symdex.ParseError{Entry: -1, Line: 1, Column: 1, Msg: fmt.Sprintf("invalid tag file: %v", err)}
	}

	root := doc.Root()
	if root == nil || root.Tag != "tagfile" {
		return nil, &symdex.ParseError{Entry: -1, Line: 1, Column: 1, Msg: "missing <tagfile> root element"}
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	b := newBuilder()
	for i, compound := range root.SelectElements("compound") {
		kind := compound.SelectAttrValue("kind", "")
		if skippedKinds[kind] {
			continue
		}

		scope := text(compound, "name")
		if scope == "" {
			return nil, &symdex.ParseError{Entry: i, Msg: "compound without <name>"}
		}
		filename := text(compound, "filename")
		if filename != "" && !strings.HasSuffix(filename, ".html") {
			filename += ".html"
		}

		if filename != "" {
			label := scope
			if j := strings.LastIndex(scope, "::"); j >= 0 {
				label = scope[j+2:]
			}
			b.add(label, item{
				url:      baseURL + filename,
				scope:    scope,
				compound: true,
			})
		}

		for _, member := range compound.SelectElements("member") {
			name := text(member, "name")
			if name == "" {
				return nil, &symdex.ParseError{Entry: i, Msg: fmt.Sprintf("member of %s without <name>", scope)}
			}
			anchorfile := text(member, "anchorfile")
			if anchorfile == "" {
				anchorfile = filename
			}
			url := baseURL + anchorfile
			if anchor := text(member, "anchor"); anchor != "" {
				url += "#" + anchor
			}
			b.add(name, item{
				url:      url,
				scope:    scope,
				name:     name,
				arglist:  text(member, "arglist"),
				function: member.SelectAttrValue("kind", "") == "function",
			})
		}
	}
	return b.entries(), nil
}

// Load decodes a tag file into an Index.
func Load(r io.Reader, baseURL string) (*symdex.Index, error) {
	entries, err := Decode(r, baseURL)
	if err != nil {
		return nil, err
	}
	return symdex.NewIndex(entries)
}

func text(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

type item struct {
	url      string
	scope    string
	name     string
	arglist  string
	function bool
	compound bool
}

type group struct {
	key   string
	label string
	items []item
}

// builder groups items by normalized key, keeping first-seen order.
type builder struct {
	groups   []*group
	byKey    map[string]*group
	overload map[string]int
}

func newBuilder() *builder {
	return &builder{
		byKey:    make(map[string]*group),
		overload: make(map[string]int),
	}
}

func (b *builder) add(label string, it item) {
	key := symdex.NormalizeKey(label)
	g, ok := b.byKey[key]
	if !ok {
		g = &group{key: key, label: label}
		b.byKey[key] = g
		b.groups = append(b.groups, g)
	}
	g.items = append(g.items, it)
	if it.function {
		b.overload[it.scope+"::"+it.name]++
	}
}

func (b *builder) entries() []*symdex.Entry {
	entries := make([]*symdex.Entry, 0, len(b.groups))
	for _, g := range b.groups {
		e := &symdex.Entry{
			Key:        g.key,
			Label:      g.label,
			References: make([]symdex.Reference, 0, len(g.items)),
		}
		for _, it := range g.items {
			e.References = append(e.References, symdex.Reference{
				Label:    g.label,
				URL:      it.url,
				Relative: true,
				Owner:    b.owner(it, len(g.items) == 1),
			})
		}
		entries = append(entries, e)
	}
	return entries
}

func (b *builder) owner(it item, single bool) string {
	if it.compound || single {
		return it.scope
	}
	owner := it.scope + "::" + it.name
	if it.function {
		if b.overload[it.scope+"::"+it.name] > 1 && it.arglist != "" {
			return owner + it.arglist
		}
		return owner + "()"
	}
	return owner
}
