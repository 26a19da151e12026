// Package bloom provides URL deduplication backed by a Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Set records URLs seen during one discovery pass.
// The Bloom filter answers most misses without touching the exact set;
// a filter hit is always confirmed against the exact set, so distinct URLs
// are never reported as duplicates.
//
// Set is not safe for concurrent use.
type Set struct {
	f     *bloom.BloomFilter
	exact map[string]struct{}
}

// NewSet creates a Set sized for n expected URLs with the given
// false positive rate for the filter.
func NewSet(n uint, fpRate float64) *Set {
	if n == 0 {
		n = 1
	}
	return &Set{
		f:     bloom.NewWithEstimates(n, fpRate),
		exact: make(map[string]struct{}, n),
	}
}

// Add inserts the URL and reports whether it was not already present.
func (s *Set) Add(url string) bool {
	if s.Contains(url) {
		return false
	}
	s.f.AddString(url)
	s.exact[url] = struct{}{}
	return true
}

// Contains reports whether the URL has been added.
func (s *Set) Contains(url string) bool {
	if !s.f.TestString(url) {
		return false
	}
	_, ok := s.exact[url]
	return ok
}

// Len returns the number of distinct URLs in the set.
func (s *Set) Len() int {
	return len(s.exact)
}

// EstimatedCount returns the filter's approximation of the number of URLs.
func (s *Set) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
