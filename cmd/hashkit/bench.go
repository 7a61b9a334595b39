package main

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/hashkit"
	"github.com/hupe1980/hashkit/bench"
)

func newBenchCmd(_ *app) *cobra.Command {
	cfg := bench.DefaultConfig()
	var algorithms []string

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure per-call latency and throughput of each algorithm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(algorithms) > 0 {
				cfg.Algorithms = cfg.Algorithms[:0]
				for _, name := range algorithms {
					alg, err := hashkit.ParseAlgorithm(name)
					if err != nil {
						return err
					}
					cfg.Algorithms = append(cfg.Algorithms, alg)
				}
			}

			rows, err := bench.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return bench.WriteTable(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().IntVarP(&cfg.Iterations, "iterations", "n", cfg.Iterations, "timed calls per algorithm and payload length")
	cmd.Flags().StringSliceVar(&algorithms, "algorithms", nil, "algorithms to measure (default all)")
	cmd.Flags().IntSliceVar(&cfg.Lengths, "lengths", cfg.Lengths, "payload lengths in bytes")
	cmd.Flags().Int64Var(&cfg.Seed, "payload-seed", cfg.Seed, "seed of the payload generator")
	return cmd
}
