// Package compression decodes compressed inputs before they are hashed.
//
// Gzip and Zstandard come from klauspost/compress, LZ4 frames from
// pierrec/lz4. Detect recognises each format by its magic number so that
// callers can hash the logical content of a blob regardless of how it was
// stored.
package compression
