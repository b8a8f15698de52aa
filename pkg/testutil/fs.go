package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/assetwatch/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewMemFS returns an in-memory filesystem wrapped for the pipeline along
// with the raw afero.Fs for assertions
func NewMemFS() (*filesystem.FS, afero.Fs) {
	afs := afero.NewMemMapFs()
	return filesystem.New(afs), afs
}

// SeedFiles writes each path => content pair, creating parent directories
func SeedFiles(t *testing.T, afs afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, afs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(afs, path, []byte(content), 0644))
	}
}

// ReadFile returns the content of path, failing the test if it is missing
func ReadFile(t *testing.T, afs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(afs, path)
	require.NoError(t, err, "reading %s", path)
	return string(data)
}

// Exists reports whether path exists in afs
func Exists(afs afero.Fs, path string) bool {
	_, err := afs.Stat(path)
	return err == nil
}

// ListFiles returns every regular file below root, sorted by walk order
func ListFiles(t *testing.T, afs afero.Fs, root string) []string {
	t.Helper()
	var files []string
	err := afero.Walk(afs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		require.NoError(t, err)
	}
	return files
}

// AssertNoTempFiles fails if an atomic write left a temp file below root
func AssertNoTempFiles(t *testing.T, afs afero.Fs, root string) {
	t.Helper()
	for _, path := range ListFiles(t, afs, root) {
		if strings.HasPrefix(filepath.Base(path), ".assetwatch-") {
			t.Errorf("leftover temp file %s", path)
		}
	}
}
