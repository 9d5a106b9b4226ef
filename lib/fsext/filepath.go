// Package fsext provides extended file system functions
package fsext

import (
	"path/filepath"
	"strings"
)

// Abs returns an absolute representation of path.
//
// If the path is not absolute it will be joined with root
// to turn it into an absolute path. The root path is assumed
// to be a directory. An empty path stays empty, so optional
// settings keep their "not configured" meaning.
func Abs(root, path string) string {
	if path == "" {
		return ""
	}
	if path[0] != '/' && path[0] != '\\' && !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	return filepath.Clean(path)
}

// RelativeTo strips root from path. The second return value reports whether
// path actually lives below root; if it does not, the path is returned with
// its volume name and leading separators removed.
func RelativeTo(root, path string) (string, bool) {
	root = filepath.Clean(root)
	path = filepath.Clean(path)
	if rel, err := filepath.Rel(root, path); err == nil && rel != ".." &&
		!strings.HasPrefix(rel, ".."+FilePathSeparator) {
		return rel, true
	}
	path = strings.TrimPrefix(path, filepath.VolumeName(path))
	return strings.TrimLeft(path, `/\`), false
}
