package checksum

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/hashkit"
	"github.com/hupe1980/hashkit/blobstore"
	"github.com/hupe1980/hashkit/compression"
	"github.com/hupe1980/hashkit/manifest"
)

// Report summarises a manifest verification.
type Report struct {
	Results    []Result
	Mismatches []*hashkit.ErrDigestMismatch
	Missing    []string
	// Failed holds blobs that could not be read, other than missing ones.
	Failed map[string]error
}

// OK reports whether every entry matched.
func (r *Report) OK() bool {
	return len(r.Mismatches) == 0 && len(r.Missing) == 0 && len(r.Failed) == 0
}

// Err joins every problem in the report, or returns nil when OK.
func (r *Report) Err() error {
	var errs []error
	for _, m := range r.Mismatches {
		errs = append(errs, m)
	}
	for _, name := range r.Missing {
		errs = append(errs, fmt.Errorf("%s: %w", name, blobstore.ErrNotFound))
	}
	for _, err := range r.Failed {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// BuildManifest hashes names and returns a manifest of the results.
func (s *Service) BuildManifest(ctx context.Context, names []string) (*manifest.Manifest, error) {
	results, err := s.ComputeAll(ctx, names)
	if err != nil {
		return nil, err
	}

	m := manifest.New(s.opts.algorithm, s.opts.seed)
	for _, r := range results {
		e := manifest.Entry{Name: r.Name, Size: r.Size, Digest: r.Digest}
		if r.Compression != compression.None {
			e.Compression = r.Compression.String()
		}
		m.Add(e)
	}
	return m, nil
}

// VerifyManifest re-hashes every entry with the manifest's algorithm and seed
// and reports mismatches. The returned error is reserved for an invalid
// manifest or a canceled context; check Report.OK for the outcome.
func (s *Service) VerifyManifest(ctx context.Context, m *manifest.Manifest) (*Report, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	jobs := make([]job, len(m.Entries))
	for i, e := range m.Entries {
		kind, err := compression.KindFromName(e.Compression)
		if err != nil {
			return nil, fmt.Errorf("manifest entry %s: %w", e.Name, err)
		}
		jobs[i] = job{name: e.Name, alg: m.Algorithm, seed: m.Seed, kind: kind}
	}

	// Per-entry failures land in the report.
	results, _ := s.runAll(ctx, jobs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Results: results, Failed: make(map[string]error)}
	for i, r := range results {
		expected := m.Entries[i].Digest
		switch {
		case r.Err != nil && errors.Is(r.Err, blobstore.ErrNotFound):
			report.Missing = append(report.Missing, r.Name)
			s.opts.metrics.RecordVerify(false, r.Err)
		case r.Err != nil:
			report.Failed[r.Name] = r.Err
			s.opts.metrics.RecordVerify(false, r.Err)
		case !r.Digest.Equal(expected):
			report.Mismatches = append(report.Mismatches, &hashkit.ErrDigestMismatch{
				Name:      r.Name,
				Algorithm: r.Algorithm,
				Expected:  expected,
				Actual:    r.Digest,
			})
			s.opts.metrics.RecordVerify(false, nil)
			s.opts.logger.LogVerify(ctx, r.Name, false, nil)
		default:
			s.opts.metrics.RecordVerify(true, nil)
		}
	}
	return report, nil
}
