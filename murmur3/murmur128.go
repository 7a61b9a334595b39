package murmur3

import (
	"github.com/hupe1980/hashkit/internal/bitops"
	"github.com/hupe1980/hashkit/internal/blockbuf"
)

const (
	c1x64 uint64 = 0x87c37b91114253d5
	c2x64 uint64 = 0x4cf5ad432745937f
)

type state128 struct {
	h1, h2 uint64
}

func mixK1(k uint64) uint64 {
	k *= c1x64
	k = bitops.RotateLeft64(k, 31)
	return k * c2x64
}

func mixK2(k uint64) uint64 {
	k *= c2x64
	k = bitops.RotateLeft64(k, 33)
	return k * c1x64
}

func (s *state128) Blocks(p []byte) {
	h1, h2 := s.h1, s.h2

	for i := 0; i < len(p); i += 16 {
		k1 := bitops.Load64(p, i)
		k2 := bitops.Load64(p, i+8)

		h1 ^= mixK1(k1)
		h1 = bitops.RotateLeft64(h1, 27)
		h1 += h2
		h1 = h1*5 + 0x52dce729

		h2 ^= mixK2(k2)
		h2 = bitops.RotateLeft64(h2, 31)
		h2 += h1
		h2 = h2*5 + 0x38495ab5
	}

	s.h1, s.h2 = h1, h2
}

// Hash128 is a streaming MurmurHash3_x64_128.
type Hash128 struct {
	seed uint64
	s    state128
	buf  blockbuf.Buffer
}

// New128 returns a MurmurHash3_x64_128 hasher. Both 64-bit lanes start at seed.
func New128(seed uint64) *Hash128 {
	d := &Hash128{seed: seed}
	d.buf.Init(16)
	d.Reset()
	return d
}

// Size returns the digest length, 16 bytes.
func (d *Hash128) Size() int { return Size128 }

// BlockSize returns the 16-byte block size.
func (d *Hash128) BlockSize() int { return 16 }

// Seed returns the seed given to New128.
func (d *Hash128) Seed() uint64 { return d.seed }

// Reset restores the seeded state and drops buffered input.
func (d *Hash128) Reset() {
	d.s = state128{h1: d.seed, h2: d.seed}
	d.buf.Reset()
}

// Write adds p to the running hash. It never returns an error.
func (d *Hash128) Write(p []byte) (int, error) {
	d.buf.Write(&d.s, p)
	return len(p), nil
}

// Update is Write without a result.
func (d *Hash128) Update(p []byte) { d.buf.Write(&d.s, p) }

// Sum128 returns both lanes in digest order.
func (d *Hash128) Sum128() (h1, h2 uint64) {
	h1, h2 = d.s.h1, d.s.h2

	var tail [16]byte
	if n := copy(tail[:], d.buf.Tail()); n > 0 {
		h2 ^= mixK2(bitops.Load64(tail[:], 8))
		h1 ^= mixK1(bitops.Load64(tail[:], 0))
	}

	n := d.buf.Total()
	h1 ^= n
	h2 ^= n

	h1 += h2
	h2 += h1

	h1 = fmix64(h1)
	h2 = fmix64(h2)

	h1 += h2
	h2 += h1

	return h1, h2
}

// Finalize returns the 16-byte digest without changing the state.
func (d *Hash128) Finalize() []byte {
	return d.Sum(make([]byte, 0, Size128))
}

// Sum appends the digest (h1 then h2, little-endian) to b.
func (d *Hash128) Sum(b []byte) []byte {
	h1, h2 := d.Sum128()
	b = bitops.PutUint64LE(b, h1)
	return bitops.PutUint64LE(b, h2)
}

// Sum128 is a one-shot MurmurHash3_x64_128.
func Sum128(data []byte, seed uint64) (h1, h2 uint64) {
	d := New128(seed)
	d.Update(data)
	return d.Sum128()
}
