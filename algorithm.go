package hashkit

import (
	"strings"

	"github.com/hupe1980/hashkit/adler32"
	"github.com/hupe1980/hashkit/fnv"
	"github.com/hupe1980/hashkit/internal/hash"
	"github.com/hupe1980/hashkit/murmur3"
	"github.com/hupe1980/hashkit/xxhash"
)

// Algorithm identifies one of the supported hash functions.
type Algorithm uint8

const (
	// Murmur3_32 is MurmurHash3_x86_32.
	Murmur3_32 Algorithm = iota + 1
	// Murmur3_128x86 is MurmurHash3_x86_128 (four 32-bit lanes).
	Murmur3_128x86
	// Murmur3_128x64 is MurmurHash3_x64_128 (two 64-bit lanes).
	Murmur3_128x64
	// XXH32 is 32-bit xxHash.
	XXH32
	// XXH64 is 64-bit xxHash.
	XXH64
	// FNV1_32 is 32-bit FNV-1.
	FNV1_32
	// FNV1a_32 is 32-bit FNV-1a.
	FNV1a_32
	// FNV1_64 is 64-bit FNV-1.
	FNV1_64
	// FNV1a_64 is 64-bit FNV-1a.
	FNV1a_64
	// Adler32 is the RFC 1950 checksum.
	Adler32
	// CRC32C is CRC-32 with the Castagnoli polynomial.
	CRC32C
)

type algorithmInfo struct {
	name      string
	size      int
	blockSize int
	seedBits  int
	newEngine func(seed uint64) Engine
}

var algorithms = [...]algorithmInfo{
	Murmur3_32:     {"murmur3-32", 4, 4, 32, func(s uint64) Engine { return murmur3.New32(uint32(s)) }},
	Murmur3_128x86: {"murmur3-128x86", 16, 16, 32, func(s uint64) Engine { return murmur3.New128x86(uint32(s)) }},
	Murmur3_128x64: {"murmur3-128x64", 16, 16, 64, func(s uint64) Engine { return murmur3.New128(s) }},
	XXH32:          {"xxh32", 4, 16, 32, func(s uint64) Engine { return xxhash.New32(uint32(s)) }},
	XXH64:          {"xxh64", 8, 32, 64, func(s uint64) Engine { return xxhash.New64(s) }},
	FNV1_32:        {"fnv1-32", 4, 1, 0, func(uint64) Engine { return fnv.New32() }},
	FNV1a_32:       {"fnv1a-32", 4, 1, 0, func(uint64) Engine { return fnv.New32a() }},
	FNV1_64:        {"fnv1-64", 8, 1, 0, func(uint64) Engine { return fnv.New64() }},
	FNV1a_64:       {"fnv1a-64", 8, 1, 0, func(uint64) Engine { return fnv.New64a() }},
	Adler32:        {"adler32", 4, 1, 0, func(uint64) Engine { return adler32.New() }},
	CRC32C:         {"crc32c", 4, 1, 0, func(uint64) Engine { return hash.NewCRC32C() }},
}

// Algorithms returns every supported algorithm in declaration order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, 0, len(algorithms)-1)
	for a := Murmur3_32; int(a) < len(algorithms); a++ {
		out = append(out, a)
	}
	return out
}

// Valid reports whether a names a supported algorithm.
func (a Algorithm) Valid() bool {
	return a > 0 && int(a) < len(algorithms)
}

func (a Algorithm) String() string {
	if !a.Valid() {
		return "unknown"
	}
	return algorithms[a].name
}

// Size is the digest length in bytes, or 0 for an invalid algorithm.
func (a Algorithm) Size() int {
	if !a.Valid() {
		return 0
	}
	return algorithms[a].size
}

// BlockSize is the number of bytes the algorithm consumes per mixing step.
func (a Algorithm) BlockSize() int {
	if !a.Valid() {
		return 0
	}
	return algorithms[a].blockSize
}

// Seeded reports whether the algorithm accepts a seed.
func (a Algorithm) Seeded() bool { return a.SeedBits() > 0 }

// SeedBits is the width of the accepted seed, 0 when unseeded.
func (a Algorithm) SeedBits() int {
	if !a.Valid() {
		return 0
	}
	return algorithms[a].seedBits
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, ErrUnknownAlgorithm
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	alg, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = alg
	return nil
}

// ParseAlgorithm resolves a name such as "xxh64" or "MURMUR3_128X64".
func ParseAlgorithm(name string) (Algorithm, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for a := Murmur3_32; int(a) < len(algorithms); a++ {
		if algorithms[a].name == n {
			return a, nil
		}
	}
	return 0, &ErrAlgorithm{Name: name, cause: ErrUnknownAlgorithm}
}
