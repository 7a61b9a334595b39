// Package fnv implements the Fowler-Noll-Vo FNV-1 and FNV-1a hashes in their
// 32-bit and 64-bit widths.
//
// FNV consumes one byte at a time, so there is no block buffering and no
// seed. Digests are the little-endian bytes of the accumulator.
package fnv

import "github.com/hupe1980/hashkit/internal/bitops"

const (
	offset32 uint32 = 0x811c9dc5
	offset64 uint64 = 0xcbf29ce484222325
	prime32  uint32 = 0x01000193
	prime64  uint64 = 0x100000001b3
)

// Hash32 is a 32-bit FNV-1 or FNV-1a hasher.
type Hash32 struct {
	h        uint32
	xorFirst bool
}

// Hash64 is a 64-bit FNV-1 or FNV-1a hasher.
type Hash64 struct {
	h        uint64
	xorFirst bool
}

// New32 returns a 32-bit FNV-1 hasher.
func New32() *Hash32 { return &Hash32{h: offset32} }

// New32a returns a 32-bit FNV-1a hasher.
func New32a() *Hash32 { return &Hash32{h: offset32, xorFirst: true} }

// New64 returns a 64-bit FNV-1 hasher.
func New64() *Hash64 { return &Hash64{h: offset64} }

// New64a returns a 64-bit FNV-1a hasher.
func New64a() *Hash64 { return &Hash64{h: offset64, xorFirst: true} }

// Size returns the digest length in bytes.
func (d *Hash32) Size() int { return 4 }

// BlockSize returns the block size the hash consumes.
func (d *Hash32) BlockSize() int { return 1 }

// Reset restores the initial state.
func (d *Hash32) Reset() { d.h = offset32 }

// Sum32 returns the current hash without changing the state.
func (d *Hash32) Sum32() uint32 { return d.h }

// Update is Write without the result.
func (d *Hash32) Update(p []byte) {
	h := d.h
	if d.xorFirst {
		for _, c := range p {
			h ^= uint32(c)
			h *= prime32
		}
	} else {
		for _, c := range p {
			h *= prime32
			h ^= uint32(c)
		}
	}
	d.h = h
}

// Write adds p to the running hash. It never returns an error.
func (d *Hash32) Write(p []byte) (int, error) {
	d.Update(p)
	return len(p), nil
}

// Sum appends the little-endian digest to b.
func (d *Hash32) Sum(b []byte) []byte { return bitops.PutUint32LE(b, d.h) }

// Finalize returns a fresh digest without changing the state.
func (d *Hash32) Finalize() []byte { return d.Sum(make([]byte, 0, 4)) }

// Size returns the digest length in bytes.
func (d *Hash64) Size() int { return 8 }

// BlockSize returns the block size the hash consumes.
func (d *Hash64) BlockSize() int { return 1 }

// Reset restores the initial state.
func (d *Hash64) Reset() { d.h = offset64 }

// Sum64 returns the current hash without changing the state.
func (d *Hash64) Sum64() uint64 { return d.h }

// Update is Write without the result.
func (d *Hash64) Update(p []byte) {
	h := d.h
	if d.xorFirst {
		for _, c := range p {
			h ^= uint64(c)
			h *= prime64
		}
	} else {
		for _, c := range p {
			h *= prime64
			h ^= uint64(c)
		}
	}
	d.h = h
}

// Write adds p to the running hash. It never returns an error.
func (d *Hash64) Write(p []byte) (int, error) {
	d.Update(p)
	return len(p), nil
}

// Sum appends the little-endian digest to b.
func (d *Hash64) Sum(b []byte) []byte { return bitops.PutUint64LE(b, d.h) }

// Finalize returns a fresh digest without changing the state.
func (d *Hash64) Finalize() []byte { return d.Sum(make([]byte, 0, 8)) }
