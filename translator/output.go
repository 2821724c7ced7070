package translator

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// OutputFS is the destination a Converter writes workflows into. Paths are slash separated and
// relative to the root of the destination. *memfs.FS satisfies this interface.
type OutputFS interface {
	MkdirAll(path string, perm fs.FileMode) error
	WriteFile(path string, data []byte, perm fs.FileMode) error
}

// DirFS is an OutputFS rooted at a directory on the local filesystem.
type DirFS string

// NewDirFS returns a DirFS rooted at dir, creating dir if it does not exist.
func NewDirFS(dir string) (DirFS, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", errors.Wrapf(err, "error creating output directory %q", dir)
	}
	return DirFS(dir), nil
}

func (d DirFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(d.join(path), perm)
}

func (d DirFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(d.join(path), data, perm)
}

func (d DirFS) join(path string) string {
	return filepath.Join(string(d), filepath.FromSlash(path))
}
