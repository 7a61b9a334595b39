package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hupe1980/hashkit/blobstore"
)

// s3Blob reads an object through ranged GET requests. When etag is set every
// request carries If-Match, so a replaced object surfaces as
// blobstore.ErrModified instead of a digest over mixed versions.
type s3Blob struct {
	client Client
	bucket string
	key    string
	etag   string
	size   int64
}

func (b *s3Blob) Close() error { return nil }

func (b *s3Blob) Size() int64 { return b.size }

func (b *s3Blob) get(ctx context.Context, off, length int64) (io.ReadCloser, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	end := min(off+length, b.size) - 1
	in := &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, end)),
	}
	if b.etag != "" {
		in.IfMatch = aws.String(b.etag)
	}

	resp, err := b.client.GetObject(ctx, in)
	if err != nil {
		return nil, 0, translate(b.key, err)
	}
	return resp.Body, end - off + 1, nil
}

func (b *s3Blob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, blobstore.ErrInvalidRange
	}
	if off >= b.size {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	body, want, err := b.get(ctx, off, int64(len(p)))
	if err != nil {
		return 0, err
	}
	defer func() { _ = body.Close() }()

	n, err := io.ReadFull(body, p[:want])
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return n, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *s3Blob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if off < 0 || length < 0 {
		return nil, blobstore.ErrInvalidRange
	}
	if off >= b.size || length == 0 {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}

	body, _, err := b.get(ctx, off, length)
	return body, err
}
