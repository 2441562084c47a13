package symdex

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Reference is a single documented occurrence of a symbol.
type Reference struct {
	// Label is the symbol name as it appears in source, e.g. "needUpdate".
	Label string `json:"label"`

	// URL links to the documentation page, with an anchor fragment
	// identifying the member.
	URL string `json:"url"`

	// Relative mirrors the generator's link flag. When set, the search
	// widget opens URL as a link into the documentation tree.
	Relative bool `json:"relative"`

	// Owner describes the declaring or overriding type,
	// e.g. "Ogre::Node::needUpdate()".
	Owner string `json:"owner"`
}

// Entry groups every reference that shares a normalized key.
type Entry struct {
	Key        string      `json:"key"`
	Label      string      `json:"label"`
	References []Reference `json:"references"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if e.Key == "" {
		return Errorf(EINVALID, "entry key required")
	}
	if e.Label == "" {
		return Errorf(EINVALID, "entry %q label required", e.Key)
	}
	if len(e.References) == 0 {
		return Errorf(EINVALID, "entry %q has no references", e.Key)
	}
	return nil
}

// clone returns a deep copy of the entry. References inherit the entry
// label when they were built without one.
func (e *Entry) clone() *Entry {
	c := &Entry{
		Key:        e.Key,
		Label:      e.Label,
		References: make([]Reference, len(e.References)),
	}
	copy(c.References, e.References)
	for i := range c.References {
		if c.References[i].Label == "" {
			c.References[i].Label = e.Label
		}
	}
	return c
}

// NormalizeKey converts a symbol name or search term into the key form used
// by the index: lowercase, with every ASCII character outside [a-z0-9]
// written as "_" followed by its two-digit hex code. Runes at or above
// U+0080 are kept as-is.
//
//	NormalizeKey("~Node")      == "_7enode"
//	NormalizeKey("operator==") == "operator_3d_3d"
func NormalizeKey(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r >= utf8.RuneSelf:
			b.WriteRune(r)
		default:
			b.WriteByte('_')
			if r < 16 {
				b.WriteByte('0')
			}
			b.WriteString(strconv.FormatInt(int64(r), 16))
		}
	}
	return b.String()
}
