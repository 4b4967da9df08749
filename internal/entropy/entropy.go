// Package entropy reads unpredictable bytes from the kernel.
package entropy

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

// SeedSize is the amount of seed material handed to generators.
const SeedSize = 32

type unixProvider interface {
	Getrandom(buf []byte, flags int) (int, error)
}

// Source is an [io.Reader] over the kernel's random number service.
type Source struct {
	unixHandler unixProvider
}

// NewSource returns a pointer to a new [Source].
func NewSource(unixHandler unixProvider) *Source {
	return &Source{
		unixHandler: unixHandler,
	}
}

// Read fills p completely. The kernel may return fewer bytes than asked
// for; Read keeps asking until p is full. An interrupted call is retried,
// a kernel without the service or with an uninitialised pool is fatal.
func (s *Source) Read(p []byte) (int, error) {
	filled := 0

	for filled < len(p) {
		n, err := s.unixHandler.Getrandom(p[filled:], unix.GRND_NONBLOCK)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.ENOSYS):
			return filled, fmt.Errorf("(entropy-read) %w: %w", ErrUnavailable, err)
		case errors.Is(err, unix.EAGAIN):
			return filled, fmt.Errorf("(entropy-read) %w: %w", ErrNotReady, err)
		case err != nil:
			return filled, fmt.Errorf("(entropy-read) failed to getrandom: %w", err)
		}

		if n <= 0 {
			return filled, fmt.Errorf("(entropy-read) %w", io.ErrNoProgress)
		}
		filled += n
	}

	return filled, nil
}

// Seed returns [SeedSize] fresh bytes.
func (s *Source) Seed() ([SeedSize]byte, error) {
	var seed [SeedSize]byte

	if _, err := s.Read(seed[:]); err != nil {
		return seed, err
	}

	return seed, nil
}
