package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/desertwitch/sysat/internal/checksum"
	"github.com/desertwitch/sysat/internal/replace"
	"github.com/spf13/cobra"
)

type writeOptions struct {
	policy string
	mode   string
	sync   bool
}

func newWriteCmd(a *app) *cobra.Command {
	opts := &writeOptions{}

	cmd := &cobra.Command{
		Use:   "write <path>",
		Short: "Atomically replace a file with standard input",
		Long: `Write standard input to a temporary sibling of path and move it over path
once complete. Readers of path see either the old or the new contents.

Policies:
  noclobber  fail if path already exists
  clobber    replace path and its permissions
  saveperms  replace path but keep its permission bits

Examples:
  echo hello | sysat write greeting.txt
  sysat write --policy noclobber --mode 0600 secret < secret.new`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := replace.ParsePolicy(opts.policy)
			if err != nil {
				return err
			}

			mode, err := strconv.ParseUint(opts.mode, 8, 32)
			if err != nil {
				return fmt.Errorf("invalid mode %q: %w", opts.mode, err)
			}

			h := a.replaceHandler()
			if cmd.Flags().Changed("sync") {
				h.Sync = opts.sync
			}

			sum, err := replace.Replace(h, nil, args[0], policy, uint32(mode), func(f *os.File) (string, error) {
				return checksum.Copy(cmd.Context(), f, cmd.InOrStdin())
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sum, args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&opts.policy, "policy", replace.Clobber.String(), "noclobber, clobber or saveperms")
	cmd.Flags().StringVar(&opts.mode, "mode", "0644", "octal permissions for a new file")
	cmd.Flags().BoolVar(&opts.sync, "sync", false, "flush to the device before committing")

	return cmd
}
