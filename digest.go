package hashkit

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/hupe1980/hashkit/internal/bitops"
)

// Digest is the output of an Engine: the little-endian bytes of each
// accumulator word in order.
type Digest []byte

// Hex renders the digest bytes in order as uppercase hexadecimal.
func (d Digest) Hex() string {
	return strings.ToUpper(hex.EncodeToString(d))
}

func (d Digest) String() string { return d.Hex() }

// Uint32 interprets the first four bytes as a little-endian integer.
func (d Digest) Uint32() (uint32, error) {
	v, err := bitops.Uint32LE(d, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %d bytes", ErrInvalidDigest, len(d))
	}
	return v, nil
}

// Uint64 interprets the first eight bytes as a little-endian integer.
func (d Digest) Uint64() (uint64, error) {
	v, err := bitops.Uint64LE(d, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %d bytes", ErrInvalidDigest, len(d))
	}
	return v, nil
}

// Equal reports whether both digests hold the same bytes.
func (d Digest) Equal(other Digest) bool { return bytes.Equal(d, other) }

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) { return []byte(d.Hex()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	v, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDigest decodes a hex digest of 4, 8 or 16 bytes. Case is ignored.
func ParseDigest(s string) (Digest, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDigest, err)
	}
	switch len(b) {
	case 4, 8, 16:
		return Digest(b), nil
	default:
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidDigest, len(b))
	}
}
