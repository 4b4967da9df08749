package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/desertwitch/sysat/internal/errno"
	"github.com/spf13/cobra"
)

func newErrnoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "errno [code...]",
		Short: "Explain kernel error codes",
		Long: `Print the symbolic name and message of each code. Without arguments every
known code is listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, c := range errno.All() {
					printErrno(out, c)
				}

				return nil
			}

			for _, arg := range args {
				n, err := strconv.ParseUint(arg, 10, 0)
				if err != nil {
					return fmt.Errorf("invalid code %q: %w", arg, err)
				}
				printErrno(out, errno.Code(n))
			}

			return nil
		},
	}
}

func printErrno(out io.Writer, c errno.Code) {
	name, ok := c.Name()
	if !ok {
		name = "-"
	}

	fmt.Fprintf(out, "%d\t%s\t%s\n", uint(c), name, c.Message())
}
