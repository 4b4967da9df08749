package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertwitch/sysat/internal/dirent"
	"github.com/desertwitch/sysat/internal/schema"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

//nolint:gochecknoglobals
var (
	dirStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00B3B3"))

	otherStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

func styleFor(t dirent.Type) lipgloss.Style {
	switch t {
	case dirent.TypeDir:
		return dirStyle
	case dirent.TypeSymlink:
		return linkStyle
	case dirent.TypeRegular, dirent.TypeUnknown:
		return lipgloss.NewStyle()
	default:
		return otherStyle
	}
}

type lsOptions struct {
	long bool
	all  bool
}

func newLsCmd(a *app) *cobra.Command {
	opts := &lsOptions{}

	cmd := &cobra.Command{
		Use:   "ls [dir]",
		Short: "List a directory from the raw kernel records",
		Long: `List the entries of a directory in the order the kernel returns them.

Examples:
  sysat ls
  sysat ls -la /etc`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			return runLs(cmd.OutOrStdout(), a.unixHandler, dir, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.long, "long", "l", false, "show type, permissions and size")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "include . and ..")

	return cmd
}

func runLs(out io.Writer, unixHandler *schema.Unix, dir string, opts *lsOptions) error {
	r, err := dirent.Open(nil, dir, unixHandler)
	if err != nil {
		return err
	}
	defer r.Close()

	dirfd := schema.DirFd(r.Dir())

	for entry, err := range r.All() {
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", dir, err)
		}
		if entry.IsDot() && !opts.all {
			continue
		}

		name := styleFor(entry.Type).Render(string(entry.Name))

		if !opts.long {
			fmt.Fprintln(out, name)

			continue
		}

		var stat unix.Stat_t
		if err := unixHandler.Fstatat(dirfd, string(entry.Name), &stat, unix.AT_SYMLINK_NOFOLLOW); err != nil {
			// Entries can vanish between the listing and the stat.
			fmt.Fprintf(out, "%-7s %4s %8s %10d %s\n", entry.Type, "?", "?", entry.Inode, name)

			continue
		}
		meta := schema.NewMetadata(&stat)

		fmt.Fprintf(out, "%-7s %04o %8s %10d %s\n",
			entry.Type,
			meta.Perms,
			humanize.Bytes(meta.Size),
			entry.Inode,
			name,
		)
	}

	return nil
}
