package schema

import (
	"os"

	"github.com/desertwitch/sysat/internal/errno"
	"golang.org/x/sys/unix"
)

// DirFd returns the descriptor that resolves relative paths against dir,
// or [unix.AT_FDCWD] (the current directory) when dir is nil.
func DirFd(dir *os.File) int {
	if dir == nil {
		return unix.AT_FDCWD
	}

	return int(dir.Fd())
}

// Unix is an implementation wrapping Unix system calls.
type Unix struct{}

// Openat wraps around [unix.Openat].
func (*Unix) Openat(dirfd int, path string, flags int, mode uint32) (int, error) {
	n, err := errno.FromResult(unix.Openat(dirfd, path, flags, mode))

	return int(n), err
}

// Close wraps around [unix.Close].
func (*Unix) Close(fd int) error {
	return errno.Translate(unix.Close(fd))
}

// Fchmod wraps around [unix.Fchmod].
func (*Unix) Fchmod(fd int, mode uint32) error {
	return errno.Translate(unix.Fchmod(fd, mode))
}

// Fstatat wraps around [unix.Fstatat].
func (*Unix) Fstatat(dirfd int, path string, stat *unix.Stat_t, flags int) error {
	return errno.Translate(unix.Fstatat(dirfd, path, stat, flags))
}

// Linkat wraps around [unix.Linkat].
func (*Unix) Linkat(olddirfd int, oldpath string, newdirfd int, newpath string, flags int) error {
	return errno.Translate(unix.Linkat(olddirfd, oldpath, newdirfd, newpath, flags))
}

// Renameat wraps around [unix.Renameat].
func (*Unix) Renameat(olddirfd int, oldpath string, newdirfd int, newpath string) error {
	return errno.Translate(unix.Renameat(olddirfd, oldpath, newdirfd, newpath))
}

// Unlinkat wraps around [unix.Unlinkat].
func (*Unix) Unlinkat(dirfd int, path string, flags int) error {
	return errno.Translate(unix.Unlinkat(dirfd, path, flags))
}

// Mkdirat wraps around [unix.Mkdirat].
func (*Unix) Mkdirat(dirfd int, path string, mode uint32) error {
	return errno.Translate(unix.Mkdirat(dirfd, path, mode))
}

// Getrandom wraps around [unix.Getrandom].
func (*Unix) Getrandom(buf []byte, flags int) (int, error) {
	n, err := errno.FromResult(unix.Getrandom(buf, flags))

	return int(n), err
}
