// Package bloom provides approximate set membership using Bloom filters.
// It is used as a prefilter when deduplicating symbol keys and file URLs.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter over strings.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds s to the filter.
func (f *Filter) Add(s string) {
	f.f.AddString(s)
}

// Test reports whether s might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(s string) bool {
	return f.f.TestString(s)
}

// TestAndAdd reports whether s might already have been added, then adds it.
func (f *Filter) TestAndAdd(s string) bool {
	return f.f.TestAndAddString(s)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
