// Package digestset detects repeated digests in a batch. 32- and 64-bit
// digests are held in compressed roaring bitmaps; wider digests are
// compared on every byte.
package digestset
