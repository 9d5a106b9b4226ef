package minifier

import (
	"path/filepath"
	"strings"

	"github.com/dreampie/jsminify/lib/fileset"
	"github.com/dreampie/jsminify/lib/fsext"
)

// MapToDestination computes where the minified version of source goes. The
// path of source relative to sourceRoot is kept below outputRoot and only the
// final path segment gets the .min.js extension. Missing parent directories
// are created.
func MapToDestination(fs fsext.Fs, source fileset.FileSpec, sourceRoot, outputRoot string) (fileset.FileSpec, error) {
	rel, _ := fsext.RelativeTo(sourceRoot, source.Path)
	dir, base := filepath.Split(rel)
	dest := filepath.Join(outputRoot, dir, minName(base))

	parent := filepath.Dir(dest)
	if err := fs.MkdirAll(parent, 0o755); err != nil {
		return fileset.FileSpec{}, &IOError{Op: "create directory", Path: parent, Err: err}
	}
	return fileset.FileSpec{Path: dest}, nil
}

func minName(base string) string {
	if strings.HasSuffix(base, ".js") {
		return strings.TrimSuffix(base, ".js") + fileset.MinSuffix
	}
	return strings.Replace(base, ".js", fileset.MinSuffix, 1)
}
