package hashkit

import "log/slog"

type options struct {
	seed             uint64
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures New, Sum and SumReader.
type Option func(*options)

// WithSeed sets the seed for seeded algorithms.
// Unseeded algorithms accept only the zero seed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &hashkit.BasicMetricsCollector{}
//	h, _ := hashkit.New(hashkit.XXH64, hashkit.WithMetricsCollector(metrics))
//	// ... use h ...
//	stats := metrics.GetStats()
//	fmt.Printf("Bytes: %d, Finalizes: %d\n", stats.UpdateBytes, stats.FinalizeCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for reader and service operations.
// Engines themselves never log. Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
