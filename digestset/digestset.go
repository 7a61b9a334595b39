package digestset

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/hashkit"
)

// Set tracks which digests have been seen.
//
// 32-bit digests live in a roaring bitmap and 64-bit digests in a roaring64
// bitmap. Digests wider than 8 bytes are keyed on every byte, so two 128-bit
// digests are duplicates only when they are equal.
// Set is safe for concurrent use.
type Set struct {
	mu     sync.Mutex
	narrow *roaring.Bitmap
	wide   *roaring64.Bitmap
	long   map[string]struct{}
}

// New creates an empty set.
func New() *Set {
	return &Set{
		narrow: roaring.New(),
		wide:   roaring64.New(),
		long:   make(map[string]struct{}),
	}
}

func fold(d hashkit.Digest) uint64 {
	var v uint64
	for i := 0; i < len(d) && i < 8; i++ {
		v |= uint64(d[i]) << (8 * i)
	}
	return v
}

// Add inserts d and reports whether it was already present.
func (s *Set) Add(d hashkit.Digest) (dup bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case len(d) == 4:
		return !s.narrow.CheckedAdd(uint32(fold(d)))
	case len(d) <= 8:
		return !s.wide.CheckedAdd(fold(d))
	}
	k := string(d)
	if _, ok := s.long[k]; ok {
		return true
	}
	s.long[k] = struct{}{}
	return false
}

// Contains reports whether d was added.
func (s *Set) Contains(d hashkit.Digest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case len(d) == 4:
		return s.narrow.Contains(uint32(fold(d)))
	case len(d) <= 8:
		return s.wide.Contains(fold(d))
	}
	_, ok := s.long[string(d)]
	return ok
}

// Len returns the number of distinct entries.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.narrow.GetCardinality()+s.wide.GetCardinality()) + len(s.long)
}

// Reset removes every entry.
func (s *Set) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.narrow.Clear()
	s.wide.Clear()
	clear(s.long)
}
