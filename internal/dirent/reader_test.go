package dirent

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"syscall"
	"testing"

	"github.com/desertwitch/sysat/internal/errno"
	"github.com/desertwitch/sysat/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type mockUnixProvider struct {
	mock.Mock
}

func (m *mockUnixProvider) Getdents(fd int, buf []byte) (int, error) {
	args := m.Called(fd, buf)

	return args.Int(0), args.Error(1)
}

func (m *mockUnixProvider) Openat(dirfd int, path string, flags int, mode uint32) (int, error) {
	args := m.Called(dirfd, path, flags, mode)

	return args.Int(0), args.Error(1)
}

// expectChunk makes the next Getdents call deliver chunk.
func expectChunk(m *mockUnixProvider, chunk []byte) *mock.Call {
	return m.On("Getdents", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			copy(args.Get(1).([]byte), chunk)
		}).
		Return(len(chunk), nil).
		Once()
}

func expectEnd(m *mockUnixProvider) *mock.Call {
	return m.On("Getdents", mock.Anything, mock.Anything).Return(0, nil).Once()
}

func newTestReader(t *testing.T, unixHandler unixProvider, l layout) *Reader {
	t.Helper()

	dir, err := os.Open(t.TempDir())
	require.NoError(t, err)

	r := NewReader(dir, unixHandler)
	r.layout = l
	t.Cleanup(func() { r.Close() })

	return r
}

func collectNames(t *testing.T, r *Reader) ([]string, error) {
	t.Helper()

	names := []string{}
	for {
		entry, ok, err := r.Next()
		if err != nil {
			return names, err
		}
		if !ok {
			return names, nil
		}
		names = append(names, string(entry.Name))
	}
}

// TestReader_Success tests that N records yield N entries in order.
func TestReader_Success(t *testing.T) {
	t.Parallel()

	for _, l := range []layout{typeTrailing, typeInHeader} {
		unixProv := &mockUnixProvider{}
		expectChunk(unixProv, records(l, "a", "bb", "ccc", "dddd"))
		expectEnd(unixProv)

		r := newTestReader(t, unixProv, l)

		names, err := collectNames(t, r)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "bb", "ccc", "dddd"}, names)

		unixProv.AssertExpectations(t)
	}
}

// TestReader_Refill tests that the buffer is refilled once exhausted.
func TestReader_Refill(t *testing.T) {
	t.Parallel()

	unixProv := &mockUnixProvider{}
	expectChunk(unixProv, records(typeTrailing, "one", "two"))
	expectChunk(unixProv, records(typeTrailing, "three"))
	expectEnd(unixProv)

	r := newTestReader(t, unixProv, typeTrailing)

	names, err := collectNames(t, r)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, names)

	unixProv.AssertNumberOfCalls(t, "Getdents", 3)
}

// TestReader_EndIsFinal tests that the kernel is not asked again after the end.
func TestReader_EndIsFinal(t *testing.T) {
	t.Parallel()

	unixProv := &mockUnixProvider{}
	expectEnd(unixProv)

	r := newTestReader(t, unixProv, typeTrailing)

	for range 3 {
		_, ok, err := r.Next()
		require.NoError(t, err)
		assert.False(t, ok)
	}

	unixProv.AssertNumberOfCalls(t, "Getdents", 1)
}

// TestReader_Interrupted tests that EINTR during refill is retried.
func TestReader_Interrupted(t *testing.T) {
	t.Parallel()

	unixProv := &mockUnixProvider{}
	unixProv.On("Getdents", mock.Anything, mock.Anything).Return(-1, errno.Code(unix.EINTR)).Twice()
	expectChunk(unixProv, records(typeTrailing, "file"))
	expectEnd(unixProv)

	r := newTestReader(t, unixProv, typeTrailing)

	names, err := collectNames(t, r)
	require.NoError(t, err)
	assert.Equal(t, []string{"file"}, names)

	unixProv.AssertNumberOfCalls(t, "Getdents", 4)
}

// TestReader_KernelError tests that a refill error is sticky.
func TestReader_KernelError(t *testing.T) {
	t.Parallel()

	unixProv := &mockUnixProvider{}
	unixProv.On("Getdents", mock.Anything, mock.Anything).Return(-1, errno.Code(unix.EBADF)).Once()

	r := newTestReader(t, unixProv, typeTrailing)

	_, ok, err := r.Next()
	assert.False(t, ok)
	require.ErrorIs(t, err, unix.EBADF)

	var code errno.Code
	require.ErrorAs(t, err, &code)
	assert.Equal(t, errno.Code(unix.EBADF), code)

	_, ok, again := r.Next()
	assert.False(t, ok)
	require.ErrorIs(t, again, unix.EBADF)

	unixProv.AssertNumberOfCalls(t, "Getdents", 1)
}

// TestReader_CorruptOffset tests that a record claiming to extend past the
// valid bytes is caught instead of being read.
func TestReader_CorruptOffset(t *testing.T) {
	t.Parallel()

	chunk := records(typeTrailing, "good", "bad")
	second := len(record(typeTrailing, 0, TypeRegular, "good"))
	chunk[second+offRecLen] = 0xff
	chunk[second+offRecLen+1] = 0x0f

	unixProv := &mockUnixProvider{}
	expectChunk(unixProv, chunk)

	r := newTestReader(t, unixProv, typeTrailing)

	names, err := collectNames(t, r)
	require.ErrorIs(t, err, ErrCorruptRecord)
	assert.Equal(t, []string{"good"}, names)

	_, _, again := r.Next()
	require.ErrorIs(t, again, ErrCorruptRecord)

	unixProv.AssertNumberOfCalls(t, "Getdents", 1)
}

// TestReader_ZeroLength tests that a zero record length cannot stall the cursor.
func TestReader_ZeroLength(t *testing.T) {
	t.Parallel()

	chunk := records(typeTrailing, "x")
	chunk[offRecLen] = 0
	chunk[offRecLen+1] = 0

	unixProv := &mockUnixProvider{}
	expectChunk(unixProv, chunk)

	r := newTestReader(t, unixProv, typeTrailing)

	_, _, err := r.Next()
	require.ErrorIs(t, err, ErrCorruptRecord)
}

// TestReader_Overreport tests a kernel claiming more bytes than the buffer.
func TestReader_Overreport(t *testing.T) {
	t.Parallel()

	unixProv := &mockUnixProvider{}
	unixProv.On("Getdents", mock.Anything, mock.Anything).Return(BufferSize+1, nil).Once()

	r := newTestReader(t, unixProv, typeTrailing)

	_, _, err := r.Next()
	require.ErrorIs(t, err, ErrShortBuffer)
}

// TestReader_All tests the sequence form.
func TestReader_All(t *testing.T) {
	t.Parallel()

	unixProv := &mockUnixProvider{}
	expectChunk(unixProv, records(typeTrailing, "a", "b", "c"))

	r := newTestReader(t, unixProv, typeTrailing)

	names := []string{}
	for entry, err := range r.All() {
		require.NoError(t, err)
		names = append(names, string(entry.Name))
		if len(names) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, names)

	entry, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "c", string(entry.Name))
}

// TestReadAll_SkipsDots tests that ReadAll drops "." and "..".
func TestReadAll_SkipsDots(t *testing.T) {
	t.Parallel()

	unixProv := &mockUnixProvider{}
	expectChunk(unixProv, records(typeTrailing, ".", "..", "keep"))
	expectEnd(unixProv)

	r := newTestReader(t, unixProv, typeTrailing)

	entries, err := ReadAll(r)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep", string(entries[0].Name))
}

// TestOpen_Error tests that open failures surface the kernel code.
func TestOpen_Error(t *testing.T) {
	t.Parallel()

	unixProv := &mockUnixProvider{}
	unixProv.On("Openat", unix.AT_FDCWD, "/missing", openFlags, uint32(0)).Return(-1, errno.Code(unix.ENOENT)).Once()

	r, err := Open(nil, "/missing", unixProv)
	require.ErrorIs(t, err, unix.ENOENT)
	assert.Nil(t, r)

	unixProv.AssertExpectations(t)
}

// TestReader_Kernel tests enumeration of a real directory.
func TestReader_Kernel(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "file"), []byte("data"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir"), 0o700))
	require.NoError(t, os.Symlink("file", filepath.Join(root, "link")))

	r, err := Open(nil, root, &schema.Unix{})
	require.NoError(t, err)
	defer r.Close()

	all := map[string]Entry{}
	for entry, err := range r.All() {
		require.NoError(t, err)
		all[string(entry.Name)] = entry.Clone()
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{".", "..", "dir", "file", "link"}, names)

	expected := map[string]Type{"file": TypeRegular, "dir": TypeDir, "link": TypeSymlink}
	for name, typ := range expected {
		// Some filesystems do not record types in the directory.
		assert.Contains(t, []Type{typ, TypeUnknown}, all[name].Type, name)

		fi, err := os.Lstat(filepath.Join(root, name))
		require.NoError(t, err)
		assert.Equal(t, fi.Sys().(*syscall.Stat_t).Ino, all[name].Inode, name)
	}
}

// TestReader_KernelLarge tests a directory that needs several refills.
func TestReader_KernelLarge(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	const count = 600
	for i := range count {
		name := filepath.Join(root, fmt.Sprintf("entry-with-a-rather-long-name-%04d", i))
		require.NoError(t, os.WriteFile(name, nil, 0o600))
	}

	dir, err := os.Open(root)
	require.NoError(t, err)

	r := NewReader(dir, &schema.Unix{})
	defer r.Close()

	entries, err := ReadAll(r)
	require.NoError(t, err)
	assert.Len(t, entries, count)

	seen := map[string]bool{}
	for _, e := range entries {
		assert.False(t, seen[string(e.Name)], "duplicate %s", e.Name)
		seen[string(e.Name)] = true
	}
}
