package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/hashkit/compression"
	"github.com/hupe1980/hashkit/manifest"
)

func newSumCmd(a *app) *cobra.Command {
	var (
		manifestName string
		record       bool
		listPrefix   string
	)

	cmd := &cobra.Command{
		Use:   "sum [NAME...]",
		Short: "Print the digest of each blob",
		Long: `Print the digest of each named blob, or of every blob under --list when
no names are given. Blobs whose digest repeats an earlier one are marked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, store, err := a.service(cmd)
			if err != nil {
				return err
			}

			blobs, err := names(cmd, store, args, listPrefix)
			if err != nil {
				return err
			}
			if len(blobs) == 0 {
				return errors.New("no blobs to hash")
			}

			if record {
				var errs []error
				for _, name := range blobs {
					res, err := svc.Record(ctx, name)
					if err != nil {
						errs = append(errs, fmt.Errorf("%s: %w", name, err))
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", res.Digest.Hex(), res.Name)
				}
				return errors.Join(errs...)
			}

			results, err := svc.ComputeAll(ctx, blobs)
			for _, r := range results {
				if r.Err != nil {
					continue
				}
				line := fmt.Sprintf("%s  %s", r.Digest.Hex(), r.Name)
				if r.Duplicate {
					line += "  (duplicate)"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			if err != nil {
				return err
			}

			if manifestName != "" {
				m := manifest.New(svc.Algorithm(), svc.Seed())
				for _, r := range results {
					e := manifest.Entry{Name: r.Name, Size: r.Size, Digest: r.Digest}
					if r.Compression != compression.None {
						e.Compression = r.Compression.String()
					}
					m.Add(e)
				}
				if err := manifest.Save(ctx, store, manifestName, m); err != nil {
					return fmt.Errorf("save manifest: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestName, "manifest", "m", "", "write a manifest of the results to this blob")
	cmd.Flags().BoolVar(&record, "record", false, "record each digest in the ledger")
	cmd.Flags().StringVar(&listPrefix, "list", "", "hash every blob under this prefix when no names are given")
	cmd.MarkFlagsMutuallyExclusive("manifest", "record")
	return cmd
}
