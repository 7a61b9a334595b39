package bitops

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
)

// ErrOutOfRange is matched by every error reporting a read past the end of a buffer.
var ErrOutOfRange = errors.New("bitops: read out of range")

// OutOfRangeError describes a load that would cross the end of its buffer.
type OutOfRangeError struct {
	Offset int
	Width  int
	Len    int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("bitops: read of %d bytes at offset %d exceeds buffer length %d", e.Width, e.Offset, e.Len)
}

// Is reports whether target is ErrOutOfRange.
func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

// RotateLeft32 rotates v left by n bits, n in [1, 31].
func RotateLeft32(v uint32, n int) uint32 {
	return bits.RotateLeft32(v, n)
}

// RotateLeft64 rotates v left by n bits, n in [1, 63].
func RotateLeft64(v uint64, n int) uint64 {
	return bits.RotateLeft64(v, n)
}

func check(b []byte, off, width int) error {
	if off < 0 || off > len(b)-width {
		return &OutOfRangeError{Offset: off, Width: width, Len: len(b)}
	}
	return nil
}

// Uint32LE decodes the 4 bytes at b[off:] as a little-endian uint32.
func Uint32LE(b []byte, off int) (uint32, error) {
	if err := check(b, off, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[off:]), nil
}

// Uint64LE decodes the 8 bytes at b[off:] as a little-endian uint64.
func Uint64LE(b []byte, off int) (uint64, error) {
	if err := check(b, off, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[off:]), nil
}

// Load32 is Uint32LE for offsets the caller has already proven valid.
// It panics with *OutOfRangeError otherwise.
func Load32(b []byte, off int) uint32 {
	if err := check(b, off, 4); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint32(b[off:])
}

// Load64 is Uint64LE for offsets the caller has already proven valid.
// It panics with *OutOfRangeError otherwise.
func Load64(b []byte, off int) uint64 {
	if err := check(b, off, 8); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(b[off:])
}

// PutUint32LE appends v to dst in little-endian order.
func PutUint32LE(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

// PutUint64LE appends v to dst in little-endian order.
func PutUint64LE(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}
