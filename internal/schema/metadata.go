package schema

import "golang.org/x/sys/unix"

const (
	// ModeBits covers the permission bits plus setuid, setgid and sticky.
	ModeBits = 0o7777
)

// Metadata is the subset of a stat result the rest of the module needs.
type Metadata struct {
	Inode      uint64
	Perms      uint32
	UID        uint32
	GID        uint32
	ModifiedAt unix.Timespec
	Size       uint64
	IsDir      bool
	IsSymlink  bool
}

// NewMetadata returns [Metadata] for a filled [unix.Stat_t].
func NewMetadata(stat *unix.Stat_t) *Metadata {
	size := uint64(0)
	if stat.Size > 0 {
		size = uint64(stat.Size)
	}

	return &Metadata{
		Inode:      stat.Ino,
		Perms:      stat.Mode & ModeBits,
		UID:        stat.Uid,
		GID:        stat.Gid,
		ModifiedAt: stat.Mtim,
		Size:       size,
		IsDir:      (stat.Mode & unix.S_IFMT) == unix.S_IFDIR,
		IsSymlink:  (stat.Mode & unix.S_IFMT) == unix.S_IFLNK,
	}
}
