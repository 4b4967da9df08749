package schema

import (
	"unsafe"

	"github.com/desertwitch/sysat/internal/errno"
	"golang.org/x/sys/unix"
)

// Getdents reads packed directory records into buf using the legacy
// getdents call, whose records carry the entry type in their last byte.
// It returns the number of valid bytes, zero at the end of the directory.
func (*Unix) Getdents(fd int, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, errno.Code(unix.EINVAL)
	}

	r1, _, e := unix.Syscall(unix.SYS_GETDENTS, uintptr(fd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))

	word := int(r1)
	if e != 0 {
		word = -int(e)
	}

	n, err := errno.FromReturn(word)

	return int(n), err
}
