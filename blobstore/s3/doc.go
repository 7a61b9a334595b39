// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("inputs/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
// Reads are ranged GETs, so the chunked blobstore.Reader streams large
// objects without buffering them. Writes send a CRC32C checksum and switch
// to multipart uploads above the configured part size.
package s3
