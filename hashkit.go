package hashkit

import (
	"context"
	"hash"
	"io"
	"time"
)

// Engine is the streaming contract every algorithm implements.
//
// Write never returns an error and Sum appends the little-endian digest, as
// hash.Hash requires. Finalize returns the same bytes as Sum(nil) and does
// not consume the state: further writes continue the same stream.
type Engine interface {
	hash.Hash

	// Update is Write without the (n, err) result.
	Update(p []byte)

	// Finalize returns a fresh digest of everything written since the last Reset.
	Finalize() []byte
}

// New returns an Engine for alg.
//
// A metrics collector set with WithMetricsCollector observes every update
// and finalize on the returned engine.
func New(alg Algorithm, optFns ...Option) (Engine, error) {
	o := applyOptions(optFns)
	return newEngine(alg, o)
}

func newEngine(alg Algorithm, o options) (Engine, error) {
	if !alg.Valid() {
		return nil, ErrUnknownAlgorithm
	}
	if err := checkSeed(alg, o.seed); err != nil {
		return nil, err
	}

	e := algorithms[alg].newEngine(o.seed)
	if _, noop := o.metricsCollector.(NoopMetricsCollector); noop {
		return e, nil
	}
	return &instrumentedEngine{Engine: e, alg: alg, mc: o.metricsCollector}, nil
}

// Sum hashes data in one call.
func Sum(alg Algorithm, data []byte, optFns ...Option) (Digest, error) {
	e, err := New(alg, optFns...)
	if err != nil {
		return nil, err
	}
	e.Update(data)
	return Digest(e.Finalize()), nil
}

// SumReader hashes everything read from r and reports the byte count.
func SumReader(alg Algorithm, r io.Reader, optFns ...Option) (Digest, int64, error) {
	return SumReaderContext(context.Background(), alg, r, optFns...)
}

// SumReaderContext is SumReader with a context for logging.
func SumReaderContext(ctx context.Context, alg Algorithm, r io.Reader, optFns ...Option) (Digest, int64, error) {
	o := applyOptions(optFns)
	e, err := newEngine(alg, o)
	if err != nil {
		return nil, 0, err
	}

	start := time.Now()
	buf := make([]byte, 32*1024)
	n, err := io.CopyBuffer(e, r, buf)
	elapsed := time.Since(start)

	o.metricsCollector.RecordChecksum(alg, n, elapsed, err)
	if err != nil {
		o.logger.WithAlgorithm(alg).LogChecksum(ctx, "", n, nil, elapsed, err)
		return nil, n, err
	}

	d := Digest(e.Finalize())
	o.logger.WithAlgorithm(alg).LogChecksum(ctx, "", n, d, elapsed, nil)
	return d, n, nil
}

type instrumentedEngine struct {
	Engine
	alg Algorithm
	mc  MetricsCollector
}

func (e *instrumentedEngine) Write(p []byte) (int, error) {
	e.mc.RecordUpdate(e.alg, len(p))
	return e.Engine.Write(p)
}

func (e *instrumentedEngine) Update(p []byte) {
	e.mc.RecordUpdate(e.alg, len(p))
	e.Engine.Update(p)
}

func (e *instrumentedEngine) Sum(b []byte) []byte {
	e.mc.RecordFinalize(e.alg)
	return e.Engine.Sum(b)
}

func (e *instrumentedEngine) Finalize() []byte {
	e.mc.RecordFinalize(e.alg)
	return e.Engine.Finalize()
}
