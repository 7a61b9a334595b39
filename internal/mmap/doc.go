// Package mmap provides read-only memory-mapped file access for zero-copy
// hashing of local blobs.
//
// # Usage
//
//	m, err := mmap.Open("data.bin")
//	if err != nil { ... }
//	defer m.Close()
//
//	// Hashing reads front to back
//	m.Advise(mmap.AdviceSequential)
//
//	// Zero-copy view of a byte range
//	chunk, _ := m.Slice(off, 1<<20)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): Uses mmap(2) with madvise(2) for access hints
//   - Windows: Uses CreateFileMapping/MapViewOfFile (advice is a no-op)
//
// # Thread Safety
//
// A Mapping is safe for concurrent reads. Close is idempotent and protected
// by an atomic flag, but callers must not touch slices from Bytes or Slice
// after Close returns.
package mmap
