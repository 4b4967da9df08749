package dirent

import "errors"

var (
	ErrCorruptRecord = errors.New("corrupt directory record")
	ErrUnknownLayout = errors.New("unknown directory record layout")
	ErrShortBuffer   = errors.New("kernel reported more bytes than the buffer holds")
)
