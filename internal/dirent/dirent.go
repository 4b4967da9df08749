// Package dirent enumerates directories by parsing the packed record
// stream the kernel writes into a caller buffer.
//
// A [Reader] owns one open directory and one fixed buffer. Entries come
// out in kernel order, which is unspecified and may change between
// listings of a directory that is being modified. A listing cannot be
// restarted; open the directory again for a second pass.
package dirent

import (
	"bytes"
	"strconv"

	"golang.org/x/sys/unix"
)

// Type is the file type tag the kernel stores with each entry.
type Type uint8

const (
	TypeUnknown  Type = unix.DT_UNKNOWN
	TypeFIFO     Type = unix.DT_FIFO
	TypeChar     Type = unix.DT_CHR
	TypeDir      Type = unix.DT_DIR
	TypeBlock    Type = unix.DT_BLK
	TypeRegular  Type = unix.DT_REG
	TypeSymlink  Type = unix.DT_LNK
	TypeSocket   Type = unix.DT_SOCK
	TypeWhiteout Type = unix.DT_WHT
)

func (t Type) String() string {
	switch t {
	case TypeUnknown:
		return "unknown"
	case TypeFIFO:
		return "fifo"
	case TypeChar:
		return "char"
	case TypeDir:
		return "dir"
	case TypeBlock:
		return "block"
	case TypeRegular:
		return "file"
	case TypeSymlink:
		return "symlink"
	case TypeSocket:
		return "socket"
	case TypeWhiteout:
		return "whiteout"
	default:
		return "type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Entry is one directory record.
//
// Name aliases the reader's buffer and is overwritten by the next call to
// [Reader.Next]. Use [Entry.Clone] to keep it.
type Entry struct {
	Inode uint64
	Type  Type
	Name  []byte
}

// Clone returns a copy of the entry that owns its name.
func (e Entry) Clone() Entry {
	e.Name = bytes.Clone(e.Name)

	return e
}

// IsDot reports whether the entry is "." or "..".
func (e Entry) IsDot() bool {
	return string(e.Name) == "." || string(e.Name) == ".."
}
