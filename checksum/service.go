package checksum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/hashkit"
	"github.com/hupe1980/hashkit/blobstore"
	"github.com/hupe1980/hashkit/compression"
	"github.com/hupe1980/hashkit/digestset"
)

// ErrNoLedger is returned by Record and Check when no ledger is configured.
var ErrNoLedger = errors.New("checksum: no ledger configured")

// Result describes one hashed blob.
type Result struct {
	Name      string
	Algorithm hashkit.Algorithm
	Seed      uint64
	Digest    hashkit.Digest
	// Size is the number of bytes hashed, after any decompression.
	Size int64
	// StoredSize is the size of the blob in the store.
	StoredSize  int64
	Compression compression.Kind
	// Duplicate is set by ComputeAll when an earlier input had the same digest.
	Duplicate bool
	Elapsed   time.Duration
	Err       error
}

// Service hashes blobs from a BlobStore.
type Service struct {
	store blobstore.BlobStore
	opts  options
}

// New creates a Service reading from store. It fails when the algorithm or
// seed is invalid, or when the chunk size exceeds the controller's buffer limit.
func New(store blobstore.BlobStore, optFns ...Option) (*Service, error) {
	o := applyOptions(optFns)
	if _, err := hashkit.New(o.algorithm, hashkit.WithSeed(o.seed)); err != nil {
		return nil, err
	}
	if err := o.controller.CheckBuffer(o.chunkSize); err != nil {
		return nil, fmt.Errorf("checksum: chunk size: %w", err)
	}
	return &Service{store: store, opts: o}, nil
}

// Algorithm returns the configured algorithm.
func (s *Service) Algorithm() hashkit.Algorithm { return s.opts.algorithm }

// Seed returns the configured seed.
func (s *Service) Seed() uint64 { return s.opts.seed }

// job is one blob to hash with the settings to use for it.
type job struct {
	name string
	alg  hashkit.Algorithm
	seed uint64
	// kind forces a decoder; auto sniffs the header instead.
	kind compression.Kind
	auto bool
}

func (s *Service) job(name string) job {
	return job{name: name, alg: s.opts.algorithm, seed: s.opts.seed, auto: s.opts.decompress}
}

// Compute streams name through a fresh engine.
func (s *Service) Compute(ctx context.Context, name string) (Result, error) {
	res := s.run(ctx, s.job(name))
	return res, res.Err
}

func (s *Service) run(ctx context.Context, j job) Result {
	start := time.Now()
	res := Result{Name: j.name, Algorithm: j.alg, Seed: j.seed}

	n, err := s.hash(ctx, j, &res)
	res.Size = n
	res.Elapsed = time.Since(start)
	if err != nil {
		res.Err = fmt.Errorf("checksum %s: %w", j.name, err)
		res.Digest = nil
	}

	s.opts.metrics.RecordChecksum(j.alg, n, res.Elapsed, err)
	s.opts.logger.WithAlgorithm(j.alg).LogChecksum(ctx, j.name, n, res.Digest, res.Elapsed, err)
	return res
}

func (s *Service) hash(ctx context.Context, j job, res *Result) (int64, error) {
	ctrl := s.opts.controller

	if err := ctrl.AcquireJob(ctx); err != nil {
		return 0, err
	}
	defer ctrl.ReleaseJob()

	if err := ctrl.AcquireBuffer(ctx, s.opts.chunkSize); err != nil {
		return 0, err
	}
	defer ctrl.ReleaseBuffer(s.opts.chunkSize)

	engine, err := hashkit.New(j.alg, hashkit.WithSeed(j.seed), hashkit.WithMetricsCollector(s.opts.metrics))
	if err != nil {
		return 0, err
	}

	blob, err := s.store.Open(ctx, j.name)
	if err != nil {
		return 0, err
	}
	defer func() { _ = blob.Close() }()
	res.StoredSize = blob.Size()

	br := blobstore.NewReader(ctx, blob, s.opts.chunkSize, blobstore.WithChunkHook(ctrl.ChunkHook()))
	defer func() { _ = br.Close() }()

	var src io.Reader = br

	switch {
	case j.auto:
		rc, kind, err := compression.NewAutoReader(src)
		if err != nil {
			return 0, err
		}
		defer func() { _ = rc.Close() }()
		res.Compression = kind
		src = rc
	case j.kind != compression.None:
		rc, err := compression.NewReader(j.kind, src)
		if err != nil {
			return 0, err
		}
		defer func() { _ = rc.Close() }()
		res.Compression = j.kind
		src = rc
	}

	buf := make([]byte, s.opts.chunkSize)
	n, err := io.CopyBuffer(engineWriter{engine}, src, buf)
	if err != nil {
		return n, err
	}

	res.Digest = hashkit.Digest(engine.Finalize())
	return n, nil
}

// engineWriter hides any ReaderFrom so CopyBuffer uses the chunk buffer.
type engineWriter struct {
	e hashkit.Engine
}

func (w engineWriter) Write(p []byte) (int, error) {
	w.e.Update(p)
	return len(p), nil
}

// ComputeAll hashes names in parallel and returns results in input order.
//
// A failing blob does not stop the others; its Result carries the error and
// the returned error joins every per-blob failure. Results whose digest
// already appeared earlier in names are marked Duplicate.
func (s *Service) ComputeAll(ctx context.Context, names []string) ([]Result, error) {
	jobs := make([]job, len(names))
	for i, name := range names {
		jobs[i] = s.job(name)
	}
	return s.runAll(ctx, jobs)
}

func (s *Service) runAll(ctx context.Context, jobs []job) ([]Result, error) {
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.concurrency)

	for i, j := range jobs {
		g.Go(func() error {
			results[i] = s.run(gctx, j)
			// Only cancellation aborts the batch.
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	seen := digestset.New()
	var (
		errs       []error
		duplicates int
	)
	for i := range results {
		if results[i].Err != nil {
			errs = append(errs, results[i].Err)
			continue
		}
		if seen.Add(results[i].Digest) {
			results[i].Duplicate = true
			duplicates++
		}
	}

	s.opts.logger.WithCount(len(jobs)).LogBatch(ctx, len(jobs), len(errs), duplicates)
	return results, errors.Join(errs...)
}

// Verify hashes name and compares the digest with expected.
// A different digest yields a *hashkit.ErrDigestMismatch.
func (s *Service) Verify(ctx context.Context, name string, expected hashkit.Digest) (Result, error) {
	return s.verify(ctx, s.job(name), expected)
}

func (s *Service) verify(ctx context.Context, j job, expected hashkit.Digest) (Result, error) {
	res := s.run(ctx, j)
	if res.Err != nil {
		s.opts.metrics.RecordVerify(false, res.Err)
		s.opts.logger.LogVerify(ctx, j.name, false, res.Err)
		return res, res.Err
	}

	if !res.Digest.Equal(expected) {
		err := &hashkit.ErrDigestMismatch{
			Name:      j.name,
			Algorithm: j.alg,
			Expected:  expected,
			Actual:    res.Digest,
		}
		s.opts.metrics.RecordVerify(false, nil)
		s.opts.logger.LogVerify(ctx, j.name, false, nil)
		return res, err
	}

	s.opts.metrics.RecordVerify(true, nil)
	s.opts.logger.LogVerify(ctx, j.name, true, nil)
	return res, nil
}
