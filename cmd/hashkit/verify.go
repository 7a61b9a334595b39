package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/hashkit"
	"github.com/hupe1980/hashkit/blobstore"
	"github.com/hupe1980/hashkit/ledger"
	"github.com/hupe1980/hashkit/manifest"
)

// errVerifyFailed is returned after the per-blob report has been printed.
var errVerifyFailed = errors.New("verification failed")

func newVerifyCmd(a *app) *cobra.Command {
	var (
		manifestName string
		useLedger    bool
		digest       string
	)

	cmd := &cobra.Command{
		Use:   "verify [NAME...]",
		Short: "Check blobs against a manifest, the ledger or a digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			svc, store, err := a.service(cmd)
			if err != nil {
				return err
			}

			switch {
			case manifestName != "":
				m, err := manifest.Load(ctx, store, manifestName)
				if err != nil {
					return fmt.Errorf("load manifest: %w", err)
				}
				report, err := svc.VerifyManifest(ctx, m)
				if err != nil {
					return err
				}
				printReport(cmd, m, report.Mismatches, report.Missing, report.Failed)
				if !report.OK() {
					return errVerifyFailed
				}
				return nil

			case digest != "":
				if len(args) != 1 {
					return errors.New("--digest needs exactly one blob name")
				}
				want, err := hashkit.ParseDigest(digest)
				if err != nil {
					return err
				}
				res, err := svc.Verify(ctx, args[0], want)
				return printOne(cmd, res.Name, err)

			case useLedger:
				if len(args) == 0 {
					return errors.New("--ledger needs at least one blob name")
				}
				failed := false
				for _, name := range args {
					_, err := svc.Check(ctx, name)
					if printOne(cmd, name, err) != nil {
						failed = true
					}
				}
				if failed {
					return errVerifyFailed
				}
				return nil

			default:
				fmt.Fprintln(out, "nothing to verify against: use --manifest, --ledger or --digest")
				return errors.New("missing verification source")
			}
		},
	}

	cmd.Flags().StringVarP(&manifestName, "manifest", "m", "", "verify every entry of this manifest blob")
	cmd.Flags().BoolVar(&useLedger, "ledger", false, "verify the named blobs against the ledger")
	cmd.Flags().StringVarP(&digest, "digest", "d", "", "expected hex digest of a single blob")
	cmd.MarkFlagsMutuallyExclusive("manifest", "ledger", "digest")
	return cmd
}

func printReport(cmd *cobra.Command, m *manifest.Manifest, mismatches []*hashkit.ErrDigestMismatch, missing []string, failed map[string]error) {
	out := cmd.OutOrStdout()

	bad := make(map[string]string, len(mismatches)+len(missing)+len(failed))
	for _, mm := range mismatches {
		bad[mm.Name] = "FAILED"
	}
	for _, name := range missing {
		bad[name] = "MISSING"
	}
	for name := range failed {
		bad[name] = "ERROR"
	}

	for _, e := range m.Entries {
		status, ok := bad[e.Name]
		if !ok {
			status = "OK"
		}
		fmt.Fprintf(out, "%s: %s\n", e.Name, status)
	}
	if n := len(bad); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "hashkit: %d of %d entries did not verify\n", n, len(m.Entries))
	}
}

func printOne(cmd *cobra.Command, name string, err error) error {
	out := cmd.OutOrStdout()
	switch {
	case err == nil:
		fmt.Fprintf(out, "%s: OK\n", name)
	case errors.Is(err, hashkit.ErrMismatch):
		fmt.Fprintf(out, "%s: FAILED\n", name)
	case errors.Is(err, blobstore.ErrNotFound):
		fmt.Fprintf(out, "%s: MISSING\n", name)
	case errors.Is(err, ledger.ErrNotFound):
		fmt.Fprintf(out, "%s: NOT RECORDED\n", name)
	default:
		fmt.Fprintf(out, "%s: ERROR\n", name)
		return err
	}
	if err != nil {
		return errVerifyFailed
	}
	return nil
}
