package fsext

import (
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// Fs represents a file system
type Fs = afero.Fs

// FilePathSeparator is the FilePathSeparator to be used within a file system
const FilePathSeparator = afero.FilePathSeparator

// NewMemMapFs returns a Fs that is in memory
func NewMemMapFs() Fs {
	return afero.NewMemMapFs()
}

// NewOsFs returns a new wrapps os.Fs
func NewOsFs() Fs {
	return afero.NewOsFs()
}

// WriteFile writes the provided data to the provided fs in the provided filename
func WriteFile(fs Fs, filename string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(fs, filename, data, perm)
}

// ReadFile reads the whole file from the filesystem
func ReadFile(fs Fs, filename string) ([]byte, error) {
	return afero.ReadFile(fs, filename)
}

// Exists checks if the provided path exists on the filesystem
func Exists(fs Fs, path string) (bool, error) {
	return afero.Exists(fs, path)
}

// IsDir checks if the provided path is a directory
func IsDir(fs Fs, path string) (bool, error) {
	return afero.IsDir(fs, path)
}

// Walk walks the file tree rooted at root in lexical order, calling walkFn
// for each file or directory in the tree, including root.
func Walk(fs Fs, root string, walkFn filepath.WalkFunc) error {
	return afero.Walk(fs, root, walkFn)
}
