package symdex

import (
	"iter"
	"strings"
)

// Index is an immutable, ordered symbol table. Keys are unique and every
// entry has at least one reference. The zero value is an empty index.
//
// Index is safe for concurrent use. Entries returned by its methods are
// shared and MUST NOT be modified.
type Index struct {
	entries []*Entry
	byKey   map[string]int
	refs    int
}

// NewIndex builds an index from entries in table order. The entries are
// copied, so later changes by the caller never reach the index.
// Returns EINVALID for an invalid entry or a duplicate key.
func NewIndex(entries []*Entry) (*Index, error) {
	idx := &Index{
		entries: make([]*Entry, 0, len(entries)),
		byKey:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if e == nil {
			return nil, Errorf(EINVALID, "entry %d is nil", i)
		}
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if pos, ok := idx.byKey[e.Key]; ok {
			return nil, Errorf(EINVALID, "duplicate key %q at entries %d and %d", e.Key, pos, i)
		}
		idx.byKey[e.Key] = len(idx.entries)
		idx.entries = append(idx.entries, e.clone())
		idx.refs += len(e.References)
	}
	return idx, nil
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// ReferenceCount returns the total number of references across all entries.
func (idx *Index) ReferenceCount() int {
	if idx == nil {
		return 0
	}
	return idx.refs
}

// Entries returns the entries in table order.
func (idx *Index) Entries() []*Entry {
	if idx == nil {
		return nil
	}
	out := make([]*Entry, len(idx.entries))
	copy(out, idx.entries)
	return out
}

// Lookup returns the entry stored under key. The key is matched exactly;
// use NormalizeKey to look up a symbol name.
func (idx *Index) Lookup(key string) (*Entry, bool) {
	if idx == nil {
		return nil, false
	}
	pos, ok := idx.byKey[key]
	if !ok {
		return nil, false
	}
	return idx.entries[pos], true
}

// QueryEntries yields, in table order, every entry whose key starts with the
// normalized prefix. An empty prefix matches every entry.
// The sequence can be ranged over any number of times.
func (idx *Index) QueryEntries(prefix string) iter.Seq[*Entry] {
	p := NormalizeKey(prefix)
	return func(yield func(*Entry) bool) {
		if idx == nil {
			return
		}
		for _, e := range idx.entries {
			if !strings.HasPrefix(e.Key, p) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Query yields the references of every entry matching prefix, in table
// order and then reference order. See QueryEntries.
func (idx *Index) Query(prefix string) iter.Seq[Reference] {
	entries := idx.QueryEntries(prefix)
	return func(yield func(Reference) bool) {
		for e := range entries {
			for _, ref := range e.References {
				if !yield(ref) {
					return
				}
			}
		}
	}
}
