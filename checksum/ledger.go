package checksum

import (
	"context"

	"github.com/hupe1980/hashkit/ledger"
)

// Record hashes name and stores the digest in the ledger.
// It fails with ledger.ErrConflict when a different digest is already recorded.
func (s *Service) Record(ctx context.Context, name string) (Result, error) {
	if s.opts.ledger == nil {
		return Result{Name: name}, ErrNoLedger
	}

	res, err := s.Compute(ctx, name)
	if err != nil {
		return res, err
	}

	err = s.opts.ledger.Put(ctx, ledger.Entry{
		Name:      name,
		Algorithm: res.Algorithm,
		Seed:      res.Seed,
		Digest:    res.Digest,
		Size:      res.Size,
	})
	s.opts.logger.LogLedger(ctx, "record", name, err)
	return res, err
}

// Check re-hashes name with the algorithm and seed stored in the ledger and
// compares against the recorded digest.
func (s *Service) Check(ctx context.Context, name string) (Result, error) {
	if s.opts.ledger == nil {
		return Result{Name: name}, ErrNoLedger
	}

	entry, err := s.opts.ledger.Get(ctx, name)
	s.opts.logger.LogLedger(ctx, "lookup", name, err)
	if err != nil {
		return Result{Name: name}, err
	}

	j := s.job(name)
	j.alg, j.seed = entry.Algorithm, entry.Seed
	return s.verify(ctx, j, entry.Digest)
}
