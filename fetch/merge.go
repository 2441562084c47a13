package fetch

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/bloom"
)

// Bloom filter sizing for key deduplication. Large API references carry a
// few tens of thousands of symbols.
const (
	mergeExpectedKeys       = 50000
	mergeFalsePositiveRate  = 0.001
	dedupeExpectedURLs      = 1024
	dedupeFalsePositiveRate = 0.01
)

// Merge concatenates the entries of several data files in file order. When
// a key repeats, its references are appended to the entry that first used
// it, so the result has unique keys and loses no reference.
//
// The inputs are not modified.
func Merge(files ...[]*symdex.Entry) []*symdex.Entry {
	var n int
	for _, f := range files {
		n += len(f)
	}

	seen := bloom.NewFilter(uint(max(n, mergeExpectedKeys)), mergeFalsePositiveRate)
	byKey := make(map[string]*symdex.Entry)
	merged := make([]*symdex.Entry, 0, n)

	for _, f := range files {
		for _, e := range f {
			// A negative filter answer is exact, which spares the map lookup
			// for the common case of a fresh key.
			if seen.TestAndAdd(e.Key) {
				if first, ok := byKey[e.Key]; ok {
					first.References = append(first.References, e.References...)
					continue
				}
			}

			c := &symdex.Entry{
				Key:        e.Key,
				Label:      e.Label,
				References: append([]symdex.Reference(nil), e.References...),
			}
			byKey[e.Key] = c
			merged = append(merged, c)
		}
	}
	return merged
}

// dedupe drops repeated URLs, keeping first occurrences in order.
func dedupe(urls []string) []string {
	seen := bloom.NewFilter(uint(max(len(urls), dedupeExpectedURLs)), dedupeFalsePositiveRate)
	exact := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen.TestAndAdd(u) {
			if _, ok := exact[u]; ok {
				continue
			}
		}
		exact[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// ComputeHash fingerprints raw data files in order using xxhash. Payload
// boundaries are part of the hash, so moving bytes between files changes it.
func ComputeHash(payloads ...string) string {
	d := xxhash.New()
	for _, p := range payloads {
		_, _ = fmt.Fprintf(d, "%d:", len(p))
		_, _ = d.WriteString(p)
	}
	return fmt.Sprintf("%x", d.Sum64())
}
