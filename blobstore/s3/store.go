package s3

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/hupe1980/hashkit/blobstore"
)

// Options configures a Store created with New.
type Options struct {
	Prefix       string
	Region       string
	Endpoint     string
	UsePathStyle bool
	Upload       UploadConfig
}

// Option configures a Store.
type Option func(*Options)

// WithPrefix prepends prefix to every key.
func WithPrefix(prefix string) Option {
	return func(o *Options) { o.Prefix = prefix }
}

// WithRegion overrides the region from the shared AWS config.
func WithRegion(region string) Option {
	return func(o *Options) { o.Region = region }
}

// WithEndpoint points the client at an S3-compatible endpoint.
func WithEndpoint(endpoint string) Option {
	return func(o *Options) { o.Endpoint = endpoint }
}

// WithPathStyle enables path-style addressing (bucket in the URL path).
func WithPathStyle(enabled bool) Option {
	return func(o *Options) { o.UsePathStyle = enabled }
}

// WithUploadConfig overrides the multipart upload settings.
func WithUploadConfig(cfg UploadConfig) Option {
	return func(o *Options) { o.Upload = cfg }
}

// Store implements blobstore.BlobStore for S3.
type Store struct {
	client Client
	bucket string
	prefix string
	up     *uploader
}

// New loads the default AWS config and creates a Store for bucket.
func New(ctx context.Context, bucket string, optFns ...Option) (*Store, error) {
	opts := Options{Upload: DefaultUploadConfig()}
	for _, fn := range optFns {
		fn(&opts)
	}

	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	s := NewStore(client, bucket, opts.Prefix)
	s.up = newUploader(client, opts.Upload)
	return s, nil
}

// NewStore creates a Store from an existing client.
// rootPrefix is prepended to all keys (e.g. "inputs/").
func NewStore(client Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
		up:     newUploader(client, DefaultUploadConfig()),
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	var nsk *types.NoSuchKey
	return errors.As(err, &nf) || errors.As(err, &nsk)
}

// translate maps S3 errors for name onto blobstore sentinels.
func translate(name string, err error) error {
	if isNotFound(err) {
		return fmt.Errorf("%s: %w", name, blobstore.ErrNotFound)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
		return fmt.Errorf("%s: %w", name, blobstore.ErrModified)
	}
	return err
}

// Open issues a HEAD request for the size and ETag and returns a blob that
// reads through ranged GETs pinned to that ETag.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, translate(name, err)
	}

	return &s3Blob{
		client: s.client,
		bucket: s.bucket,
		key:    key,
		etag:   aws.ToString(head.ETag),
		size:   aws.ToInt64(head.ContentLength),
	}, nil
}

// Put uploads data, using a multipart upload when it exceeds the part size.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	return s.up.put(ctx, s.bucket, s.key(name), data)
}

// Delete removes a blob.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

// List returns all blob names with the given prefix, relative to the root prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.key(prefix)),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			name = strings.TrimPrefix(name, "/")
			if name != "" {
				names = append(names, name)
			}
		}
	}

	sort.Strings(names)
	return names, nil
}
