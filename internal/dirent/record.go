package dirent

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// layout selects where a record keeps its type byte.
type layout int

const (
	// typeTrailing is the legacy getdents record: header, NUL padded name,
	// type tag in the last byte of the record.
	typeTrailing layout = iota

	// typeInHeader is the getdents64 record: header, type tag, NUL
	// terminated name.
	typeInHeader
)

const (
	// headerSize is inode (8), next-record offset (8) and record length (2).
	headerSize = 18

	offInode   = 0
	offRecLen  = 16
	minRecSize = headerSize + 2
)

// parse decodes the record starting at buf[k:]. buf must end at the
// valid-bytes mark so that nothing past it is ever read. It returns the
// entry and the record length to advance by.
func (l layout) parse(buf []byte, k int) (Entry, int, error) {
	if k < 0 || len(buf)-k < headerSize {
		return Entry{}, 0, fmt.Errorf("%w: header at %d exceeds %d valid bytes", ErrCorruptRecord, k, len(buf))
	}

	inode := binary.NativeEndian.Uint64(buf[k+offInode:])
	reclen := int(binary.NativeEndian.Uint16(buf[k+offRecLen:]))

	if reclen < minRecSize {
		return Entry{}, 0, fmt.Errorf("%w: record length %d at %d", ErrCorruptRecord, reclen, k)
	}
	if reclen > len(buf)-k {
		return Entry{}, 0, fmt.Errorf("%w: record at %d with length %d exceeds %d valid bytes", ErrCorruptRecord, k, reclen, len(buf))
	}

	rec := buf[k : k+reclen]

	var typ byte
	var name []byte

	switch l {
	case typeTrailing:
		typ = rec[reclen-1]
		name = rec[headerSize : reclen-1]
	case typeInHeader:
		typ = rec[headerSize]
		name = rec[headerSize+1:]
	default:
		return Entry{}, 0, fmt.Errorf("%w: %d", ErrUnknownLayout, l)
	}

	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}

	return Entry{Inode: inode, Type: Type(typ), Name: name}, reclen, nil
}
