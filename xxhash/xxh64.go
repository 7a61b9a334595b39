package xxhash

import (
	"github.com/hupe1980/hashkit/internal/bitops"
	"github.com/hupe1980/hashkit/internal/blockbuf"
)

const (
	prime64x1 uint64 = 11400714785074694791
	prime64x2 uint64 = 14029467366897019727
	prime64x3 uint64 = 1609587929392839161
	prime64x4 uint64 = 9650029242287828579
	prime64x5 uint64 = 2870177450012600261
)

func round64(acc, input uint64) uint64 {
	acc += input * prime64x2
	acc = bitops.RotateLeft64(acc, 31)
	return acc * prime64x1
}

func mergeRound64(acc, val uint64) uint64 {
	acc ^= round64(0, val)
	return acc*prime64x1 + prime64x4
}

type state64 struct {
	v1, v2, v3, v4 uint64
}

func (s *state64) Blocks(p []byte) {
	v1, v2, v3, v4 := s.v1, s.v2, s.v3, s.v4
	for i := 0; i < len(p); i += 32 {
		v1 = round64(v1, bitops.Load64(p, i))
		v2 = round64(v2, bitops.Load64(p, i+8))
		v3 = round64(v3, bitops.Load64(p, i+16))
		v4 = round64(v4, bitops.Load64(p, i+24))
	}
	s.v1, s.v2, s.v3, s.v4 = v1, v2, v3, v4
}

// Digest64 implements hash.Hash64 for XXH64.
//
// Note that a zero-valued Digest64 is not ready to receive writes.
// Create one with New64.
type Digest64 struct {
	seed uint64
	s    state64
	buf  blockbuf.Buffer
}

// New64 returns an XXH64 hasher with the given seed.
func New64(seed uint64) *Digest64 {
	d := &Digest64{seed: seed}
	d.buf.Init(32)
	d.Reset()
	return d
}

// Size always returns 8 bytes.
func (d *Digest64) Size() int { return 8 }

// BlockSize always returns 32 bytes.
func (d *Digest64) BlockSize() int { return 32 }

// Seed returns the seed the hasher was created with.
func (d *Digest64) Seed() uint64 { return d.seed }

// Reset restores the initial state.
func (d *Digest64) Reset() {
	d.s = state64{
		v1: d.seed + prime64x1 + prime64x2,
		v2: d.seed + prime64x2,
		v3: d.seed,
		v4: d.seed - prime64x1,
	}
	d.buf.Reset()
}

// Write adds more data to d. It always returns len(p), nil.
func (d *Digest64) Write(p []byte) (int, error) {
	d.buf.Write(&d.s, p)
	return len(p), nil
}

// Update is Write without the result.
func (d *Digest64) Update(p []byte) { d.buf.Write(&d.s, p) }

// Sum64 returns the current hash without changing the underlying state.
func (d *Digest64) Sum64() uint64 {
	var h uint64
	total := d.buf.Total()

	if total >= 32 {
		v1, v2, v3, v4 := d.s.v1, d.s.v2, d.s.v3, d.s.v4
		h = bitops.RotateLeft64(v1, 1) +
			bitops.RotateLeft64(v2, 7) +
			bitops.RotateLeft64(v3, 12) +
			bitops.RotateLeft64(v4, 18)
		h = mergeRound64(h, v1)
		h = mergeRound64(h, v2)
		h = mergeRound64(h, v3)
		h = mergeRound64(h, v4)
	} else {
		h = d.seed + prime64x5
	}

	h += total

	tail := d.buf.Tail()
	i := 0
	for ; i+8 <= len(tail); i += 8 {
		h ^= round64(0, bitops.Load64(tail, i))
		h = bitops.RotateLeft64(h, 27)*prime64x1 + prime64x4
	}
	if i+4 <= len(tail) {
		h ^= uint64(bitops.Load32(tail, i)) * prime64x1
		h = bitops.RotateLeft64(h, 23)*prime64x2 + prime64x3
		i += 4
	}
	for ; i < len(tail); i++ {
		h ^= uint64(tail[i]) * prime64x5
		h = bitops.RotateLeft64(h, 11) * prime64x1
	}

	h ^= h >> 33
	h *= prime64x2
	h ^= h >> 29
	h *= prime64x3
	h ^= h >> 32

	return h
}

// Finalize returns a fresh 8-byte little-endian digest.
func (d *Digest64) Finalize() []byte {
	return bitops.PutUint64LE(make([]byte, 0, 8), d.Sum64())
}

// Sum appends the current hash to b and returns the resulting slice.
func (d *Digest64) Sum(b []byte) []byte {
	return bitops.PutUint64LE(b, d.Sum64())
}

// Checksum64 returns the XXH64 of data.
func Checksum64(data []byte, seed uint64) uint64 {
	d := New64(seed)
	d.Update(data)
	return d.Sum64()
}
