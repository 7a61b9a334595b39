package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Kind identifies a compression format.
type Kind uint8

const (
	// None passes data through unchanged.
	None Kind = iota
	// Gzip is RFC 1952 gzip.
	Gzip
	// Zstd is the Zstandard frame format.
	Zstd
	// LZ4 is the LZ4 frame format.
	LZ4
)

// ErrUnknownKind is returned for a compression name or kind that is not supported.
var ErrUnknownKind = errors.New("compression: unknown kind")

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// HeaderSize is the number of leading bytes Detect needs to recognise every format.
const HeaderSize = 4

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// KindFromName parses a format name. The empty string maps to None.
func KindFromName(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zstd", "zst":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// Detect identifies the format from the first bytes of a stream.
// Unrecognised headers report None.
func Detect(header []byte) Kind {
	switch {
	case bytes.HasPrefix(header, magicZstd):
		return Zstd
	case bytes.HasPrefix(header, magicLZ4):
		return LZ4
	case bytes.HasPrefix(header, magicGzip):
		return Gzip
	default:
		return None
	}
}

var zstdDecoderPool sync.Pool

func getZstdDecoder(r io.Reader) (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		dec := v.(*zstd.Decoder)
		if err := dec.Reset(r); err != nil {
			dec.Close()
			return nil, err
		}
		return dec, nil
	}
	// Synchronous decoding keeps pooled decoders free of background goroutines.
	return zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
}

type zstdReader struct {
	dec *zstd.Decoder
}

func (z *zstdReader) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z *zstdReader) Close() error {
	if z.dec == nil {
		return nil
	}
	// Drop the reference to the source before pooling.
	if err := z.dec.Reset(nil); err == nil {
		zstdDecoderPool.Put(z.dec)
	} else {
		z.dec.Close()
	}
	z.dec = nil
	return nil
}

// NewReader returns a reader that decompresses r according to kind.
// Closing it does not close r.
func NewReader(kind Kind, r io.Reader) (io.ReadCloser, error) {
	switch kind {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		return gzip.NewReader(r)
	case Zstd:
		dec, err := getZstdDecoder(r)
		if err != nil {
			return nil, err
		}
		return &zstdReader{dec: dec}, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

// NewAutoReader sniffs the header of r and decompresses accordingly.
func NewAutoReader(r io.Reader) (io.ReadCloser, Kind, error) {
	br := newPeekReader(r)
	header, err := br.peek(HeaderSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, None, err
	}

	kind := Detect(header)
	rc, err := NewReader(kind, br)
	if err != nil {
		return nil, kind, err
	}
	return rc, kind, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewWriter returns a writer that compresses into w according to kind.
// Close flushes the trailer but does not close w.
func NewWriter(kind Kind, w io.Writer) (io.WriteCloser, error) {
	switch kind {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

// Compress returns data compressed with kind.
func Compress(kind Kind, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := NewWriter(kind, &buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
