package hash

import (
	"hash/crc32"

	"github.com/hupe1980/hashkit/internal/bitops"
)

// crc32cTable is pre-computed for CRC32-Castagnoli polynomial.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
// Uses hardware acceleration when available (SSE4.2, ARM CRC).
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// Digest is a streaming CRC32-C whose digest bytes are little-endian,
// matching the other engines.
type Digest struct {
	crc uint32
}

// NewCRC32C returns a new streaming CRC32-Castagnoli hasher.
func NewCRC32C() *Digest {
	return &Digest{}
}

// Size returns the digest length in bytes.
func (d *Digest) Size() int { return 4 }

// BlockSize returns the block size the hash consumes.
func (d *Digest) BlockSize() int { return 1 }

// Reset restores the initial state.
func (d *Digest) Reset() { d.crc = 0 }

// Sum32 returns the current hash without changing the state.
func (d *Digest) Sum32() uint32 { return d.crc }

// Update is Write without the result.
func (d *Digest) Update(p []byte) {
	d.crc = crc32.Update(d.crc, crc32cTable, p)
}

// Write adds p to the running hash. It never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	d.Update(p)
	return len(p), nil
}

// Sum appends the little-endian digest to b.
func (d *Digest) Sum(b []byte) []byte { return bitops.PutUint32LE(b, d.crc) }

// Finalize returns a fresh digest without changing the state.
func (d *Digest) Finalize() []byte { return d.Sum(make([]byte, 0, 4)) }
