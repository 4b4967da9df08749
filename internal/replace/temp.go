package replace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/avast/retry-go/v4"
	"github.com/desertwitch/sysat/internal/errno"
	"github.com/desertwitch/sysat/internal/schema"
	"golang.org/x/sys/unix"
)

// claim generates names inside parent until create succeeds for one of
// them. Only EEXIST is retried; once the attempts run out the last EEXIST
// is returned.
func (h *Handler) claim(parent string, create func(name string) error) (string, error) {
	seed, err := h.seedHandler.Seed()
	if err != nil {
		return "", fmt.Errorf("(replace-seed) %w: %w", errno.IO, err)
	}
	names := h.newNames(seed)

	attempts := h.MaxAttempts
	if attempts == 0 {
		attempts = DefaultMaxAttempts
	}

	var name [nameLength]byte
	var path string

	err = retry.Do(
		func() error {
			names.Fill(name[:])
			path = filepath.Join(parent, string(name[:]))

			return create(path)
		},
		retry.Attempts(attempts),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, unix.EEXIST)
		}),
		retry.OnRetry(func(n uint, err error) {
			slog.Debug("Temporary name was taken (retrying).",
				"path", path,
				"attempt", n+1,
				"err", err,
			)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("(replace-claim) failed to claim a temporary name in %q: %w", parent, err)
	}

	return path, nil
}

// CreateTemp creates and opens a new file with mode 0600 under a fresh
// name in parent, resolved against dir (nil for the current directory).
// The caller owns both the file and the name.
func (h *Handler) CreateTemp(dir *os.File, parent string) (*os.File, string, error) {
	dirfd := schema.DirFd(dir)

	var fd int
	path, err := h.claim(parent, func(name string) error {
		var err error
		fd, err = h.unixHandler.Openat(dirfd, name, tempOpenFlags, tempFileMode)

		return err
	})
	if err != nil {
		return nil, "", err
	}

	return os.NewFile(uintptr(fd), path), path, nil
}

// MkdirTemp creates a new directory with mode 0700 under a fresh name in
// parent, resolved against dir (nil for the current directory).
func (h *Handler) MkdirTemp(dir *os.File, parent string) (string, error) {
	dirfd := schema.DirFd(dir)

	return h.claim(parent, func(name string) error {
		return h.unixHandler.Mkdirat(dirfd, name, tempDirMode)
	})
}
