package murmur3

import (
	"github.com/hupe1980/hashkit/internal/bitops"
	"github.com/hupe1980/hashkit/internal/blockbuf"
)

const (
	c1x32 uint32 = 0xcc9e2d51
	c2x32 uint32 = 0x1b873593
)

// Size32 is the digest length of Hash32 in bytes.
const Size32 = 4

type state32 struct {
	h1 uint32
}

func mixK32(k uint32) uint32 {
	k *= c1x32
	k = bitops.RotateLeft32(k, 15)
	k *= c2x32
	return k
}

func (s *state32) Blocks(p []byte) {
	h1 := s.h1
	for i := 0; i < len(p); i += 4 {
		h1 ^= mixK32(bitops.Load32(p, i))
		h1 = bitops.RotateLeft32(h1, 13)
		h1 = h1*5 + 0xe6546b64
	}
	s.h1 = h1
}

// Hash32 is a streaming MurmurHash3_x86_32.
type Hash32 struct {
	seed uint32
	s    state32
	buf  blockbuf.Buffer
}

// New32 returns a MurmurHash3_x86_32 hasher with the given seed.
func New32(seed uint32) *Hash32 {
	d := &Hash32{seed: seed}
	d.buf.Init(4)
	d.Reset()
	return d
}

func (d *Hash32) Size() int      { return Size32 }
func (d *Hash32) BlockSize() int { return 4 }
func (d *Hash32) Seed() uint32   { return d.seed }

// Reset restores the seeded initial state.
func (d *Hash32) Reset() {
	d.s = state32{h1: d.seed}
	d.buf.Reset()
}

// Write never returns an error.
func (d *Hash32) Write(p []byte) (int, error) {
	d.buf.Write(&d.s, p)
	return len(p), nil
}

// Update is Write without the result.
func (d *Hash32) Update(p []byte) { d.buf.Write(&d.s, p) }

// Sum32 returns the digest as the little-endian uint32 of its bytes.
func (d *Hash32) Sum32() uint32 {
	h1 := d.s.h1

	// The tail is key-mixed into h1 without the block step.
	var tail [4]byte
	if n := copy(tail[:], d.buf.Tail()); n > 0 {
		h1 ^= mixK32(bitops.Load32(tail[:], 0))
	}

	h1 ^= uint32(d.buf.Total())
	return fmix32(h1)
}

// Finalize returns a fresh 4-byte digest.
func (d *Hash32) Finalize() []byte {
	return bitops.PutUint32LE(make([]byte, 0, Size32), d.Sum32())
}

// Sum appends the digest to b.
func (d *Hash32) Sum(b []byte) []byte {
	return bitops.PutUint32LE(b, d.Sum32())
}

// Sum32 is a one-shot MurmurHash3_x86_32.
func Sum32(data []byte, seed uint32) uint32 {
	d := New32(seed)
	d.Update(data)
	return d.Sum32()
}
