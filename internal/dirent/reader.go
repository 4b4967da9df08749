package dirent

import (
	"errors"
	"fmt"
	"iter"
	"os"

	"github.com/desertwitch/sysat/internal/schema"
	"golang.org/x/sys/unix"
)

const (
	// BufferSize is a page less some header slack.
	BufferSize = 4088

	openFlags = unix.O_RDONLY | unix.O_DIRECTORY | unix.O_CLOEXEC
)

type unixProvider interface {
	Getdents(fd int, buf []byte) (int, error)
	Openat(dirfd int, path string, flags int, mode uint32) (int, error)
}

// Reader produces the entries of one open directory.
//
// The zero-copy contract: the name of a returned [Entry] is only valid
// until the next call to [Reader.Next].
type Reader struct {
	unixHandler unixProvider
	dir         *os.File
	fd          int
	layout      layout

	buf [BufferSize]byte
	k   int
	end int

	done bool
	err  error
}

// NewReader returns a [Reader] that takes ownership of the already open
// directory. The directory is closed by [Reader.Close].
func NewReader(dir *os.File, unixHandler unixProvider) *Reader {
	return &Reader{
		unixHandler: unixHandler,
		dir:         dir,
		fd:          int(dir.Fd()),
		layout:      kernelLayout,
	}
}

// Open opens path relative to dir (nil for the current directory) as a
// directory and returns a [Reader] for it.
func Open(dir *os.File, path string, unixHandler unixProvider) (*Reader, error) {
	fd, err := unixHandler.Openat(schema.DirFd(dir), path, openFlags, 0)
	if err != nil {
		return nil, fmt.Errorf("(dirent-open) failed to open %q: %w", path, err)
	}

	return NewReader(os.NewFile(uintptr(fd), path), unixHandler), nil
}

// Next returns the next entry. At the end of the directory it returns
// false and a nil error.
//
// An error is final: the reader keeps returning it.
func (r *Reader) Next() (Entry, bool, error) {
	if r.err != nil {
		return Entry{}, false, r.err
	}
	if r.done {
		return Entry{}, false, nil
	}

	if r.k == r.end {
		if err := r.fill(); err != nil {
			r.err = err

			return Entry{}, false, err
		}
		if r.done {
			return Entry{}, false, nil
		}
	}

	entry, reclen, err := r.layout.parse(r.buf[:r.end], r.k)
	if err != nil {
		r.err = fmt.Errorf("(dirent-next) %w", err)

		return Entry{}, false, r.err
	}
	r.k += reclen

	return entry, true, nil
}

func (r *Reader) fill() error {
	for {
		n, err := r.unixHandler.Getdents(r.fd, r.buf[:])
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return fmt.Errorf("(dirent-fill) failed to read directory: %w", err)
		}

		if n == 0 {
			r.done = true
			r.k, r.end = 0, 0

			return nil
		}
		if n > len(r.buf) {
			return fmt.Errorf("(dirent-fill) %w: %d > %d", ErrShortBuffer, n, len(r.buf))
		}

		r.k, r.end = 0, n

		return nil
	}
}

// All returns the remaining entries as a sequence. An error ends the
// sequence after being yielded once.
func (r *Reader) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for {
			entry, ok, err := r.Next()
			if err != nil {
				yield(Entry{}, err)

				return
			}
			if !ok {
				return
			}
			if !yield(entry, nil) {
				return
			}
		}
	}
}

// Dir returns the directory being read, for resolving entry names
// against it.
func (r *Reader) Dir() *os.File {
	return r.dir
}

// Close releases the directory.
func (r *Reader) Close() error {
	return r.dir.Close()
}

// ReadAll drains the reader into owned entries, skipping "." and "..".
func ReadAll(r *Reader) ([]Entry, error) {
	entries := []Entry{}

	for entry, err := range r.All() {
		if err != nil {
			return nil, err
		}
		if entry.IsDot() {
			continue
		}
		entries = append(entries, entry.Clone())
	}

	return entries, nil
}
