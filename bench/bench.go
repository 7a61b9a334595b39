package bench

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"

	"github.com/hupe1980/hashkit"
	"github.com/hupe1980/hashkit/testutil"
)

// Config selects what Run measures.
type Config struct {
	Algorithms []hashkit.Algorithm
	Lengths    []int
	// Iterations is the number of timed calls per algorithm and length.
	Iterations int
	// Seed feeds the payload generator.
	Seed int64
}

// DefaultConfig measures every algorithm over the standard payload lengths.
func DefaultConfig() Config {
	return Config{
		Algorithms: hashkit.Algorithms(),
		Lengths:    testutil.PayloadLengths,
		Iterations: 1000,
		Seed:       42,
	}
}

// Row is the result for one algorithm and payload length.
type Row struct {
	Algorithm  hashkit.Algorithm
	Length     int
	Iterations int
	Metrics    *tachymeter.Metrics
	// Digest of the last call, so the work cannot be skipped.
	Digest hashkit.Digest
}

// BytesPerSecond is the mean throughput over all timed calls.
func (r Row) BytesPerSecond() float64 {
	if r.Metrics == nil || r.Metrics.Time.Cumulative <= 0 {
		return 0
	}
	total := float64(r.Length) * float64(r.Iterations)
	return total / r.Metrics.Time.Cumulative.Seconds()
}

// Throughput renders BytesPerSecond in SI units, e.g. "1.2 GB/s".
func (r Row) Throughput() string {
	return humanize.Bytes(uint64(r.BytesPerSecond())) + "/s"
}

// Run hashes seeded random payloads and records the latency of every call.
func Run(ctx context.Context, cfg Config) ([]Row, error) {
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultConfig().Iterations
	}
	if len(cfg.Algorithms) == 0 {
		cfg.Algorithms = hashkit.Algorithms()
	}
	if len(cfg.Lengths) == 0 {
		cfg.Lengths = testutil.PayloadLengths
	}

	payloads := testutil.NewRNG(cfg.Seed).Payloads(cfg.Lengths)

	rows := make([]Row, 0, len(cfg.Algorithms)*len(payloads))
	for _, alg := range cfg.Algorithms {
		for _, data := range payloads {
			if err := ctx.Err(); err != nil {
				return rows, err
			}
			row, err := measure(alg, data, cfg.Iterations)
			if err != nil {
				return rows, err
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func measure(alg hashkit.Algorithm, data []byte, iterations int) (Row, error) {
	engine, err := hashkit.New(alg)
	if err != nil {
		return Row{}, err
	}

	t := tachymeter.New(&tachymeter.Config{Size: iterations})

	wall := time.Now()
	var digest []byte
	for i := 0; i < iterations; i++ {
		start := time.Now()
		engine.Reset()
		engine.Update(data)
		digest = engine.Finalize()
		t.AddTime(time.Since(start))
	}
	t.SetWallTime(time.Since(wall))

	return Row{
		Algorithm:  alg,
		Length:     len(data),
		Iterations: iterations,
		Metrics:    t.Calc(),
		Digest:     hashkit.Digest(digest),
	}, nil
}

// WriteTable prints rows as an aligned table.
func WriteTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "algorithm\tbytes\tcalls\tp50\tp99\tmax\tthroughput\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Algorithm,
			humanize.Comma(int64(r.Length)),
			humanize.Comma(int64(r.Iterations)),
			r.Metrics.Time.P50,
			r.Metrics.Time.P99,
			r.Metrics.Time.Max,
			r.Throughput(),
		)
	}
	return tw.Flush()
}
