package hashkit

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    bytesCounter *prometheus.CounterVec
//	    checksumHist *prometheus.HistogramVec
//	}
//
//	func (p *PrometheusCollector) RecordUpdate(alg hashkit.Algorithm, n int) {
//	    p.bytesCounter.WithLabelValues(alg.String()).Add(float64(n))
//	}
type MetricsCollector interface {
	// RecordUpdate is called for every Write/Update on an instrumented engine.
	RecordUpdate(alg Algorithm, bytes int)

	// RecordFinalize is called for every Sum/Finalize on an instrumented engine.
	RecordFinalize(alg Algorithm)

	// RecordChecksum is called after a whole input has been hashed.
	// bytes is the input length, err is nil if successful.
	RecordChecksum(alg Algorithm, bytes int64, duration time.Duration, err error)

	// RecordVerify is called after a digest comparison.
	// ok is false on mismatch, err carries any I/O failure.
	RecordVerify(ok bool, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordUpdate(Algorithm, int)                           {}
func (NoopMetricsCollector) RecordFinalize(Algorithm)                              {}
func (NoopMetricsCollector) RecordChecksum(Algorithm, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordVerify(bool, error)                              {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	UpdateCount        atomic.Int64
	UpdateBytes        atomic.Int64
	FinalizeCount      atomic.Int64
	ChecksumCount      atomic.Int64
	ChecksumErrors     atomic.Int64
	ChecksumBytes      atomic.Int64
	ChecksumTotalNanos atomic.Int64
	VerifyCount        atomic.Int64
	VerifyMismatches   atomic.Int64
	VerifyErrors       atomic.Int64
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(_ Algorithm, n int) {
	b.UpdateCount.Add(1)
	b.UpdateBytes.Add(int64(n))
}

// RecordFinalize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFinalize(Algorithm) {
	b.FinalizeCount.Add(1)
}

// RecordChecksum implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChecksum(_ Algorithm, n int64, duration time.Duration, err error) {
	b.ChecksumCount.Add(1)
	b.ChecksumTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ChecksumErrors.Add(1)
		return
	}
	b.ChecksumBytes.Add(n)
}

// RecordVerify implements MetricsCollector.
func (b *BasicMetricsCollector) RecordVerify(ok bool, err error) {
	b.VerifyCount.Add(1)
	switch {
	case err != nil:
		b.VerifyErrors.Add(1)
	case !ok:
		b.VerifyMismatches.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		UpdateCount:      b.UpdateCount.Load(),
		UpdateBytes:      b.UpdateBytes.Load(),
		FinalizeCount:    b.FinalizeCount.Load(),
		ChecksumCount:    b.ChecksumCount.Load(),
		ChecksumErrors:   b.ChecksumErrors.Load(),
		ChecksumBytes:    b.ChecksumBytes.Load(),
		ChecksumAvgNanos: b.getAvgChecksumNanos(),
		VerifyCount:      b.VerifyCount.Load(),
		VerifyMismatches: b.VerifyMismatches.Load(),
		VerifyErrors:     b.VerifyErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgChecksumNanos() int64 {
	count := b.ChecksumCount.Load()
	if count == 0 {
		return 0
	}
	return b.ChecksumTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	UpdateCount      int64
	UpdateBytes      int64
	FinalizeCount    int64
	ChecksumCount    int64
	ChecksumErrors   int64
	ChecksumBytes    int64
	ChecksumAvgNanos int64
	VerifyCount      int64
	VerifyMismatches int64
	VerifyErrors     int64
}
