package checksum

import (
	"runtime"

	"github.com/hupe1980/hashkit"
	"github.com/hupe1980/hashkit/ledger"
	"github.com/hupe1980/hashkit/resource"
)

// DefaultChunkSize is the size of each range read when streaming a blob.
const DefaultChunkSize = 1 << 20

type options struct {
	algorithm   hashkit.Algorithm
	seed        uint64
	chunkSize   int64
	concurrency int
	decompress  bool
	logger      *hashkit.Logger
	metrics     hashkit.MetricsCollector
	controller  *resource.Controller
	ledger      ledger.Ledger
}

// Option configures a Service.
type Option func(*options)

// WithAlgorithm selects the hash algorithm. Default: XXH64.
func WithAlgorithm(alg hashkit.Algorithm) Option {
	return func(o *options) { o.algorithm = alg }
}

// WithSeed sets the seed for seeded algorithms.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithChunkSize sets the range read size. Values <= 0 select DefaultChunkSize.
func WithChunkSize(n int64) Option {
	return func(o *options) { o.chunkSize = n }
}

// WithConcurrency bounds the number of blobs ComputeAll hashes at once.
// Values <= 0 select GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// WithDecompression hashes the decompressed content of gzip, zstd and lz4
// blobs, detected by their magic number.
func WithDecompression(enabled bool) Option {
	return func(o *options) { o.decompress = enabled }
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(logger *hashkit.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = hashkit.NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetrics configures a metrics collector. Pass nil to disable metrics.
func WithMetrics(mc hashkit.MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = hashkit.NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithController throttles jobs, buffers and reads through c.
func WithController(c *resource.Controller) Option {
	return func(o *options) { o.controller = c }
}

// WithLedger enables Record and Check.
func WithLedger(l ledger.Ledger) Option {
	return func(o *options) { o.ledger = l }
}

func applyOptions(optFns []Option) options {
	o := options{
		algorithm: hashkit.XXH64,
		logger:    hashkit.NoopLogger(),
		metrics:   hashkit.NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.chunkSize <= 0 {
		o.chunkSize = DefaultChunkSize
	}
	if o.concurrency <= 0 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	return o
}
