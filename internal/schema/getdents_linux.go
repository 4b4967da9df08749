//go:build linux && !amd64

package schema

import (
	"github.com/desertwitch/sysat/internal/errno"
	"golang.org/x/sys/unix"
)

// Getdents reads packed directory records into buf using getdents64, the
// only directory read this architecture provides. Its records carry the
// entry type right after the fixed header.
// It returns the number of valid bytes, zero at the end of the directory.
func (*Unix) Getdents(fd int, buf []byte) (int, error) {
	n, err := errno.FromResult(unix.Getdents(fd, buf))

	return int(n), err
}
