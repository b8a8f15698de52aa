package filesystem

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/assetwatch/pkg/errors"
	"github.com/spf13/afero"
)

const (
	dirPerm     fs.FileMode = 0755
	filePerm    fs.FileMode = 0644
	tempPattern             = ".assetwatch-*.tmp"
)

// FS wraps an afero filesystem with the pipeline's I/O primitives
type FS struct {
	fs afero.Fs
}

// New creates an FS over the given afero filesystem
func New(fs afero.Fs) *FS {
	return &FS{fs: fs}
}

// NewOS creates an FS over the real OS filesystem
func NewOS() *FS {
	return New(afero.NewOsFs())
}

// Afero exposes the underlying afero filesystem
func (f *FS) Afero() afero.Fs {
	return f.fs
}

// Exists reports whether path exists
func (f *FS) Exists(path string) (bool, error) {
	ok, err := afero.Exists(f.fs, path)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrIOFailure, "stat failed").WithPath(path)
	}
	return ok, nil
}

// IsDir reports whether path exists and is a directory
func (f *FS) IsDir(path string) bool {
	ok, err := afero.IsDir(f.fs, path)
	return err == nil && ok
}

// ReadFile reads the whole file at path
func (f *FS) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIOFailure, "read failed").
			WithPath(path).
			WithDetail("operation", "read")
	}
	return data, nil
}

// WriteFile atomically replaces path with data, creating missing parent
// directories
func (f *FS) WriteFile(path string, data []byte) error {
	return f.replace(path, "write", filePerm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// CopyFile atomically copies src to dest, preserving content exactly
func (f *FS) CopyFile(src, dest string) error {
	in, err := f.fs.Open(src)
	if err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "copy failed").
			WithPath(src).
			WithDetail("operation", "copy")
	}
	defer in.Close()

	perm := filePerm
	if info, err := in.Stat(); err == nil {
		perm = info.Mode().Perm()
	}

	return f.replace(dest, "copy", perm, func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
}

// replace writes into a temp file next to path and renames it into place.
// On any failure the temp file is removed and path is left untouched.
func (f *FS) replace(path, operation string, perm fs.FileMode, fill func(io.Writer) error) error {
	wrap := func(err error) error {
		return errors.Wrapf(err, errors.ErrIOFailure, "%s failed", operation).
			WithPath(path).
			WithDetail("operation", operation)
	}

	dir := filepath.Dir(path)
	if err := f.fs.MkdirAll(dir, dirPerm); err != nil {
		return wrap(err)
	}

	tmp, err := afero.TempFile(f.fs, dir, tempPattern)
	if err != nil {
		return wrap(err)
	}
	tmpName := tmp.Name()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		_ = f.fs.Remove(tmpName)
		return wrap(err)
	}
	if err := tmp.Close(); err != nil {
		_ = f.fs.Remove(tmpName)
		return wrap(err)
	}
	if err := f.fs.Chmod(tmpName, perm); err != nil {
		_ = f.fs.Remove(tmpName)
		return wrap(err)
	}
	if err := f.fs.Rename(tmpName, path); err != nil {
		_ = f.fs.Remove(tmpName)
		return wrap(err)
	}
	return nil
}

// Remove deletes path. A missing path is not an error. Directories are
// removed recursively so a removed source directory is mirrored.
func (f *FS) Remove(path string) error {
	info, err := f.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, errors.ErrIOFailure, "delete failed").
			WithPath(path).
			WithDetail("operation", "delete")
	}

	if info.IsDir() {
		err = f.fs.RemoveAll(path)
	} else {
		err = f.fs.Remove(path)
	}
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, errors.ErrIOFailure, "delete failed").
			WithPath(path).
			WithDetail("operation", "delete")
	}
	return nil
}

// RemoveAll recursively deletes path. A missing path is not an error.
func (f *FS) RemoveAll(path string) error {
	if err := f.fs.RemoveAll(path); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "recursive delete failed").
			WithPath(path).
			WithDetail("operation", "delete")
	}
	return nil
}

// Walk walks the tree rooted at root
func (f *FS) Walk(root string, fn filepath.WalkFunc) error {
	return afero.Walk(f.fs, root, fn)
}
