// Package replace writes files so that readers of the target path only
// ever see the old contents or the complete new contents.
//
// The new contents are written to a freshly claimed sibling name and then
// linked or renamed over the target. Every exit path other than the
// successful commit removes the sibling again.
package replace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/desertwitch/sysat/internal/entropy"
	"github.com/desertwitch/sysat/internal/schema"
	"golang.org/x/sys/unix"
)

const (
	// DefaultMaxAttempts bounds the temporary-name claim loop. With a sound
	// entropy source a single collision is already unlikely; running out
	// means the source or the directory is misbehaving.
	DefaultMaxAttempts = 256

	tempFileMode = 0o600
	tempDirMode  = 0o700

	tempOpenFlags = unix.O_RDWR | unix.O_CREAT | unix.O_EXCL | unix.O_CLOEXEC
)

type unixProvider interface {
	Fchmod(fd int, mode uint32) error
	Fstatat(dirfd int, path string, stat *unix.Stat_t, flags int) error
	Linkat(olddirfd int, oldpath string, newdirfd int, newpath string, flags int) error
	Mkdirat(dirfd int, path string, mode uint32) error
	Openat(dirfd int, path string, flags int, mode uint32) (int, error)
	Renameat(olddirfd int, oldpath string, newdirfd int, newpath string) error
	Unlinkat(dirfd int, path string, flags int) error
}

type seedProvider interface {
	Seed() ([entropy.SeedSize]byte, error)
}

// Handler runs the replacement protocol.
type Handler struct {
	unixHandler unixProvider
	seedHandler seedProvider
	newNames    func(seed [entropy.SeedSize]byte) nameGenerator

	// MaxAttempts bounds the temporary-name claim loop. Zero means
	// [DefaultMaxAttempts].
	MaxAttempts uint

	// Sync flushes the new contents to the device before they are
	// committed.
	Sync bool
}

// NewHandler returns a pointer to a new [Handler].
func NewHandler(unixHandler unixProvider, seedHandler seedProvider) *Handler {
	return &Handler{
		unixHandler: unixHandler,
		seedHandler: seedHandler,
		newNames:    newRandomNames,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Replace atomically replaces path, resolved against dir (nil for the
// current directory), with a file filled by populate.
//
// populate receives the open temporary file; it must not close it. An
// error from populate is returned as is and leaves the target untouched.
// On success the value returned by populate is returned.
func Replace[T any](h *Handler, dir *os.File, path string, policy Policy, mode uint32, populate func(*os.File) (T, error)) (T, error) {
	var zero T

	if !policy.valid() {
		return zero, fmt.Errorf("(replace) %w: %d", ErrInvalidPolicy, int(policy))
	}

	dirfd := schema.DirFd(dir)

	var fd int
	tmpPath, err := h.claim(filepath.Dir(path), func(name string) error {
		var err error
		fd, err = h.unixHandler.Openat(dirfd, name, tempOpenFlags, tempFileMode)

		return err
	})
	if err != nil {
		return zero, err
	}

	tmpFile := os.NewFile(uintptr(fd), tmpPath)
	defer tmpFile.Close()

	var committed bool
	defer func() {
		if !committed {
			if err := h.unixHandler.Unlinkat(dirfd, tmpPath, 0); err != nil {
				slog.Warn("Failed to remove temporary file after abort (was left behind).",
					"path", tmpPath,
					"target", path,
					"err", err,
				)
			}
		}
	}()

	perms, err := h.targetMode(dirfd, path, policy, mode)
	if err != nil {
		return zero, err
	}

	if err := h.unixHandler.Fchmod(fd, perms); err != nil {
		return zero, fmt.Errorf("(replace-perms) failed to chmod: %w", err)
	}

	result, err := populate(tmpFile)
	if err != nil {
		return zero, err
	}

	if h.Sync {
		if err := tmpFile.Sync(); err != nil {
			return zero, fmt.Errorf("(replace-sync) failed to sync: %w", err)
		}
	}

	if err := tmpFile.Close(); err != nil {
		return zero, fmt.Errorf("(replace-close) failed to close: %w", err)
	}

	if err := h.commit(dirfd, tmpPath, path, policy); err != nil {
		return zero, err
	}
	committed = true

	return result, nil
}

// Write is [Replace] for populate functions without a result.
func (h *Handler) Write(dir *os.File, path string, policy Policy, mode uint32, populate func(*os.File) error) error {
	_, err := Replace(h, dir, path, policy, mode, func(f *os.File) (struct{}, error) {
		return struct{}{}, populate(f)
	})

	return err
}

func (h *Handler) targetMode(dirfd int, path string, policy Policy, mode uint32) (uint32, error) {
	if policy != ClobberSavingPerms {
		return mode & schema.ModeBits, nil
	}

	var stat unix.Stat_t

	err := h.unixHandler.Fstatat(dirfd, path, &stat, 0)
	if errors.Is(err, unix.ENOENT) {
		return mode & schema.ModeBits, nil
	}
	if err != nil {
		return 0, fmt.Errorf("(replace-perms) failed to stat target: %w", err)
	}

	return schema.NewMetadata(&stat).Perms, nil
}

func (h *Handler) commit(dirfd int, tmpPath string, path string, policy Policy) error {
	switch policy {
	case NoClobber:
		if err := h.unixHandler.Linkat(dirfd, tmpPath, dirfd, path, 0); err != nil {
			return fmt.Errorf("(replace-commit) failed to link: %w", err)
		}

		// The contents are safe at the target from here on.
		if err := h.unixHandler.Unlinkat(dirfd, tmpPath, 0); err != nil {
			slog.Warn("Failed to remove temporary name after commit (was left behind).",
				"path", tmpPath,
				"target", path,
				"err", err,
			)
		}

	case Clobber, ClobberSavingPerms:
		if err := h.unixHandler.Renameat(dirfd, tmpPath, dirfd, path); err != nil {
			return fmt.Errorf("(replace-commit) failed to rename: %w", err)
		}

	default:
		return fmt.Errorf("(replace-commit) %w: %d", ErrInvalidPolicy, int(policy))
	}

	return nil
}
