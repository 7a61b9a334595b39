package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/hashkit"
)

func newListCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ALGORITHM\tDIGEST\tSEED")
			for _, alg := range hashkit.Algorithms() {
				seed := "-"
				if alg.Seeded() {
					seed = fmt.Sprintf("%d-bit", alg.SeedBits())
				}
				fmt.Fprintf(tw, "%s\t%d bytes\t%s\n", alg, alg.Size(), seed)
			}
			return tw.Flush()
		},
	}
}
