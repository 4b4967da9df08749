package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newMktempCmd(a *app) *cobra.Command {
	var directory bool

	cmd := &cobra.Command{
		Use:   "mktemp [parent]",
		Short: "Create a uniquely named file or directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent := os.TempDir()
			if len(args) > 0 {
				parent = args[0]
			}

			h := a.replaceHandler()

			if directory {
				path, err := h.MkdirTemp(nil, parent)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)

				return nil
			}

			f, path, err := h.CreateTemp(nil, parent)
			if err != nil {
				return err
			}
			f.Close()

			fmt.Fprintln(cmd.OutOrStdout(), path)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&directory, "directory", "d", false, "create a directory")

	return cmd
}
