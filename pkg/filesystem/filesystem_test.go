package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/assetwatch/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_CreatesParentDirectories(t *testing.T) {
	fs := New(afero.NewMemMapFs())

	err := fs.WriteFile("/out/deep/nested/app.js", []byte("hello"))
	require.NoError(t, err)

	data, err := fs.ReadFile("/out/deep/nested/app.js")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestWriteFile_ReplacesExistingContent(t *testing.T) {
	fs := New(afero.NewMemMapFs())
	require.NoError(t, fs.WriteFile("/out/a.txt", []byte("old")))

	require.NoError(t, fs.WriteFile("/out/a.txt", []byte("new")))

	data, err := fs.ReadFile("/out/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assertNoTempFiles(t, fs, "/out")
}

func TestWriteFile_FailureLeavesDestinationUntouched(t *testing.T) {
	base := afero.NewMemMapFs()
	fs := New(base)
	require.NoError(t, fs.WriteFile("/out/a.txt", []byte("old")))

	// Writes through a read-only view must fail without touching the file
	ro := New(afero.NewReadOnlyFs(base))
	err := ro.WriteFile("/out/a.txt", []byte("new"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIOFailure))

	data, err := fs.ReadFile("/out/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestCopyFile_PreservesBytes(t *testing.T) {
	fs := New(afero.NewMemMapFs())
	payload := []byte{0x00, 0xff, 0x10, '\n', 'x'}
	require.NoError(t, afero.WriteFile(fs.Afero(), "/src/img.bin", payload, 0600))

	require.NoError(t, fs.CopyFile("/src/img.bin", "/out/img.bin"))

	data, err := fs.ReadFile("/out/img.bin")
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	info, err := fs.Afero().Stat("/out/img.bin")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assertNoTempFiles(t, fs, "/out")
}

func TestCopyFile_MissingSource(t *testing.T) {
	fs := New(afero.NewMemMapFs())

	err := fs.CopyFile("/src/missing.bin", "/out/missing.bin")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIOFailure))

	exists, err := fs.Exists("/out/missing.bin")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRemove(t *testing.T) {
	fs := New(afero.NewMemMapFs())

	t.Run("missing path is a no-op", func(t *testing.T) {
		assert.NoError(t, fs.Remove("/out/nothing-here.js"))
	})

	t.Run("removes a file", func(t *testing.T) {
		require.NoError(t, fs.WriteFile("/out/a.js", []byte("x")))
		require.NoError(t, fs.Remove("/out/a.js"))

		exists, err := fs.Exists("/out/a.js")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("removes a directory recursively", func(t *testing.T) {
		require.NoError(t, fs.WriteFile("/out/dir/a.js", []byte("x")))
		require.NoError(t, fs.Remove("/out/dir"))
		assert.False(t, fs.IsDir("/out/dir"))
	})
}

func TestRemoveAll_MissingRoot(t *testing.T) {
	fs := New(afero.NewMemMapFs())
	assert.NoError(t, fs.RemoveAll("/never/created"))
}

func TestNewOS_RoundTrip(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()
	dest := filepath.Join(dir, "sub", "file.txt")

	require.NoError(t, fs.WriteFile(dest, []byte("on disk")))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "on disk", string(data))
	assertNoTempFiles(t, fs, filepath.Dir(dest))
}

func assertNoTempFiles(t *testing.T, fs *FS, dir string) {
	t.Helper()
	entries, err := afero.ReadDir(fs.Afero(), dir)
	require.NoError(t, err)
	for _, entry := range entries {
		matched, _ := filepath.Match(tempPattern, entry.Name())
		assert.False(t, matched, "leftover temp file %s", entry.Name())
	}
}
