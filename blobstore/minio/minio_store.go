package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/hashkit/blobstore"
)

// Store reads and writes blobs in a MinIO (or other S3-compatible) bucket.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore returns a Store rooted at prefix inside bucket, e.g. "inputs/".
func NewStore(client *minio.Client, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

func (s *Store) key(name string) string { return path.Join(s.prefix, name) }

func (s *Store) name(key string) string {
	return strings.TrimPrefix(strings.TrimPrefix(key, s.prefix), "/")
}

// translate maps MinIO error codes onto blobstore sentinels.
func translate(name string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return fmt.Errorf("%s: %w", name, blobstore.ErrNotFound)
	case "PreconditionFailed":
		return fmt.Errorf("%s: %w", name, blobstore.ErrModified)
	default:
		return err
	}
}

// Open stats the object and pins its ETag; later range reads fail with
// blobstore.ErrModified if the object is replaced.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, translate(name, err)
	}
	return &object{store: s, name: name, key: key, etag: info.ETag, size: info.Size}, nil
}

func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	return err
}

func (s *Store) Delete(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.key(name), minio.RemoveObjectOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return err
	}
	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	opts := minio.ListObjectsOptions{Prefix: s.key(prefix), Recursive: true}
	if prefix == "" {
		opts.Prefix = s.prefix
	}

	var names []string
	for info := range s.client.ListObjects(ctx, s.bucket, opts) {
		if info.Err != nil {
			return nil, info.Err
		}
		if name := s.name(info.Key); name != "" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// object is an open MinIO blob. Every read is a ranged GET.
type object struct {
	store *Store
	name  string
	key   string
	etag  string
	size  int64
}

func (o *object) Size() int64  { return o.size }
func (o *object) Close() error { return nil }

// get issues a GET for [off, off+length) clipped to the object size.
func (o *object) get(ctx context.Context, off, length int64) (*minio.Object, int64, error) {
	end := min(off+length, o.size) - 1

	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(off, end); err != nil {
		return nil, 0, err
	}
	if o.etag != "" {
		if err := opts.SetMatchETag(o.etag); err != nil {
			return nil, 0, err
		}
	}

	obj, err := o.store.client.GetObject(ctx, o.store.bucket, o.key, opts)
	if err != nil {
		return nil, 0, translate(o.name, err)
	}
	return obj, end - off + 1, nil
}

func (o *object) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, blobstore.ErrInvalidRange
	}
	if off >= o.size {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	obj, n, err := o.get(ctx, off, int64(len(p)))
	if err != nil {
		return 0, err
	}
	defer func() { _ = obj.Close() }()

	read, err := io.ReadFull(obj, p[:n])
	if err != nil {
		return read, translate(o.name, err)
	}
	if read < len(p) {
		return read, io.EOF
	}
	return read, nil
}

func (o *object) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if off < 0 || length < 0 {
		return nil, blobstore.ErrInvalidRange
	}
	if off >= o.size || length == 0 {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	obj, _, err := o.get(ctx, off, length)
	if err != nil {
		return nil, err
	}
	return obj, nil
}
