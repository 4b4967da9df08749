// Package checksum copies a stream into a file and verifies what landed
// there with BLAKE3.
package checksum

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

//nolint:containedctx
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, cr.ctx.Err()
	default:
		return cr.reader.Read(p)
	}
}

// Copy writes src into dst, which must be open for reading and writing and
// positioned at its start. After the copy dst is synced and read back from
// offset zero; the hex BLAKE3 digest is returned when both sides agree.
func Copy(ctx context.Context, dst *os.File, src io.Reader) (string, error) {
	srcHasher := blake3.New()

	ctxReader := &contextReader{
		ctx:    ctx,
		reader: io.TeeReader(src, srcHasher),
	}

	n, err := io.Copy(dst, ctxReader)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("(checksum-copy) transfer canceled: %w", err)
		}

		return "", fmt.Errorf("(checksum-copy) failed to copy: %w", err)
	}

	if err := dst.Sync(); err != nil {
		return "", fmt.Errorf("(checksum-copy) failed to sync destination: %w", err)
	}

	dstChecksum, err := Sum(ctx, io.NewSectionReader(dst, 0, n))
	if err != nil {
		return "", fmt.Errorf("(checksum-copy) failed to read back destination: %w", err)
	}

	srcChecksum := hex.EncodeToString(srcHasher.Sum(nil))

	if srcChecksum != dstChecksum {
		return "", fmt.Errorf("%w: %s (src) != %s (dst)", ErrHashMismatch, srcChecksum, dstChecksum)
	}

	return srcChecksum, nil
}

// Sum returns the hex BLAKE3 digest of everything r yields.
func Sum(ctx context.Context, r io.Reader) (string, error) {
	hasher := blake3.New()

	if _, err := io.Copy(hasher, &contextReader{ctx: ctx, reader: r}); err != nil {
		return "", fmt.Errorf("(checksum-sum) %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
