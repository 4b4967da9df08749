package errno

import (
	"strings"

	"golang.org/x/sys/unix"
)

const (
	// maxErrno is the largest value the kernel will ever report as an error.
	maxErrno = 4095
)

type entry struct {
	name    string
	message string
}

//nolint:gochecknoglobals
var table = buildTable()

// buildTable copies the platform's compiled-in name and message tables
// into one slice indexed by code. It only holds codes that have a name.
func buildTable() []entry {
	var entries []entry

	for c := 1; c <= maxErrno; c++ {
		e := unix.Errno(c)

		name := unix.ErrnoName(e)
		if name == "" {
			continue
		}

		// unix.Errno falls back to "errno N" for codes without a message.
		message := e.Error()
		if strings.HasPrefix(message, "errno ") {
			message = ""
		}

		if c >= len(entries) {
			entries = append(entries, make([]entry, c+1-len(entries))...)
		}
		entries[c] = entry{name: name, message: message}
	}

	return entries
}

func lookup(c Code) (entry, bool) {
	if c == 0 || uint64(c) >= uint64(len(table)) {
		return entry{}, false
	}

	e := table[c]

	return e, e.name != ""
}

// All returns every code the platform table knows, in ascending order.
func All() []Code {
	codes := make([]Code, 0, len(table))

	for c := range table {
		if table[c].name != "" {
			codes = append(codes, Code(c))
		}
	}

	return codes
}
