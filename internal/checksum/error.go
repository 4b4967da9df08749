package checksum

import "errors"

var (
	// ErrHashMismatch is an error that occurs when the bytes read back from
	// the destination do not hash to what was copied into it. This usually
	// points at underlying storage or hardware issues.
	ErrHashMismatch = errors.New("hash mismatch")
)
