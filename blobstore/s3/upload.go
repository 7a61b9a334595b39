package s3

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/hashkit/internal/hash"
)

// UploadConfig controls how Put sends data.
type UploadConfig struct {
	// PartSize is both the multipart part size and the threshold below which
	// a single PutObject is used. Default: 8 MiB.
	PartSize int64
	// Concurrency is the number of parts in flight. Default: 5.
	Concurrency int
	// Checksum asks S3 to validate a CRC32C of the payload.
	Checksum bool
	// LeavePartsOnError skips the abort of a failed multipart upload.
	LeavePartsOnError bool
}

// DefaultUploadConfig returns 8 MiB parts, five in flight, with checksums.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:    8 << 20,
		Concurrency: manager.DefaultUploadConcurrency,
		Checksum:    true,
	}
}

// uploader writes whole objects. Small payloads go out as one PutObject with
// a precomputed checksum; larger ones through the multipart manager.
type uploader struct {
	client Client
	cfg    UploadConfig
	mgr    *manager.Uploader
}

func newUploader(client Client, cfg UploadConfig) *uploader {
	return &uploader{
		client: client,
		cfg:    cfg,
		mgr: manager.NewUploader(client, func(u *manager.Uploader) {
			u.PartSize = cfg.PartSize
			u.Concurrency = cfg.Concurrency
			u.LeavePartsOnError = cfg.LeavePartsOnError
		}),
	}
}

func (u *uploader) put(ctx context.Context, bucket, key string, data []byte) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}

	if int64(len(data)) > u.cfg.PartSize {
		if u.cfg.Checksum {
			in.ChecksumAlgorithm = types.ChecksumAlgorithmCrc32c
		}
		_, err := u.mgr.Upload(ctx, in)
		return err
	}

	in.ContentLength = aws.Int64(int64(len(data)))
	if u.cfg.Checksum {
		in.ChecksumCRC32C = aws.String(crc32cHeader(data))
	}
	_, err := u.client.PutObject(ctx, in)
	return err
}

// crc32cHeader renders the CRC32C of data as S3 expects it: base64 of the
// big-endian checksum.
func crc32cHeader(data []byte) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], hash.CRC32C(data))
	return base64.StdEncoding.EncodeToString(b[:])
}
