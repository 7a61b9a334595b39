// Package blobstore provides the storage abstraction the checksum service
// reads inputs from and writes manifests to.
//
// BlobStore is the interface for reading and writing data blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap reads and atomic writes
//   - MemoryStore: In-memory store for tests
//   - s3.Store: Amazon S3 with range reads and parallel uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Streaming
//
// NewReader turns a Blob into an io.Reader that issues bounded range reads,
// so large remote objects are hashed without loading them whole:
//
//	blob, _ := store.Open(ctx, "data.bin")
//	defer blob.Close()
//	d, n, _ := hashkit.SumReader(hashkit.XXH64, blobstore.NewReader(ctx, blob, 8<<20))
package blobstore
