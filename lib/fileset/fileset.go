// Package fileset turns the include, fileset and exclude settings of a run
// into the ordered list of files to minify.
package fileset

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/sirupsen/logrus"

	"github.com/dreampie/jsminify/lib/fsext"
)

// MinSuffix marks files produced by a previous per-file run.
const MinSuffix = ".min.js"

// FileSpec is a resolved file system entry.
type FileSpec struct {
	Path  string
	IsDir bool
}

func (f FileSpec) String() string {
	return f.Path
}

// FileSet selects files below Directory with gitignore style patterns. A file
// is selected when it matches at least one include pattern (or there are none)
// and no exclude pattern.
type FileSet struct {
	Directory string   `json:"directory,omitempty" yaml:"directory,omitempty"`
	Includes  []string `json:"includes,omitempty" yaml:"includes,omitempty"`
	Excludes  []string `json:"excludes,omitempty" yaml:"excludes,omitempty"`
}

// IsZero reports whether the fileset is unset.
func (s FileSet) IsZero() bool {
	return s.Directory == ""
}

// Options holds the resolver input. All paths are expected to be absolute.
type Options struct {
	SourceDirectory string
	Includes        []string
	FileSet         FileSet
	Excludes        []string
	OutputFile      string
	OutputDirectory string
	Merge           bool
}

// Resolve builds the ordered list of input files. The result only contains
// files; directories reachable from the configuration are expanded
// recursively in lexical order. Duplicates are kept.
func Resolve(afs fsext.Fs, logger logrus.FieldLogger, opts Options) ([]FileSpec, error) {
	var (
		working []FileSpec
		err     error
	)
	switch {
	case len(opts.Includes) > 0:
		working, err = statAll(afs, opts.Includes)
	case !opts.FileSet.IsZero():
		working, err = matchFileSet(afs, opts.FileSet)
	default:
		working, err = listFiles(afs, opts.SourceDirectory)
	}
	if err != nil {
		return nil, err
	}

	files, err := expand(afs, working)
	if err != nil {
		return nil, err
	}

	if len(opts.Excludes) > 0 {
		excluded, err := resolveExcludes(afs, logger, opts.Excludes)
		if err != nil {
			return nil, err
		}
		files = without(files, func(f FileSpec) bool {
			_, ok := excluded[f.Path]
			return ok
		})
	}

	if opts.Merge && opts.OutputFile != "" {
		output := filepath.Clean(opts.OutputFile)
		files = without(files, func(f FileSpec) bool {
			if f.Path == output {
				logger.WithField("file", output).Debug("Removing the output file from the inputs")
				return true
			}
			return false
		})
	}

	if !opts.Merge && opts.OutputDirectory != "" {
		outDir := filepath.Clean(opts.OutputDirectory)
		files = without(files, func(f FileSpec) bool {
			if _, inside := fsext.RelativeTo(outDir, f.Path); inside && strings.HasSuffix(f.Path, MinSuffix) {
				logger.WithField("file", f.Path).Debug("Skipping a previous output")
				return true
			}
			return false
		})
	}

	return files, nil
}

// Summary returns a human readable, comma separated list of the files.
func Summary(files []FileSpec) string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return strings.Join(paths, ", ")
}

func statAll(afs fsext.Fs, paths []string) ([]FileSpec, error) {
	specs := make([]FileSpec, 0, len(paths))
	for _, p := range paths {
		p = filepath.Clean(p)
		info, err := afs.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("couldn't access the included file %s: %w", p, err)
		}
		specs = append(specs, FileSpec{Path: p, IsDir: info.IsDir()})
	}
	return specs, nil
}

// listFiles walks root and returns every regular file below it.
func listFiles(afs fsext.Fs, root string) ([]FileSpec, error) {
	if root == "" {
		return nil, errors.New("no source directory configured")
	}
	var files []FileSpec
	err := fsext.Walk(afs, filepath.Clean(root), func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, FileSpec{Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't list the files in %s: %w", root, err)
	}
	return files, nil
}

func expand(afs fsext.Fs, specs []FileSpec) ([]FileSpec, error) {
	files := make([]FileSpec, 0, len(specs))
	for _, spec := range specs {
		if !spec.IsDir {
			files = append(files, spec)
			continue
		}
		children, err := listFiles(afs, spec.Path)
		if err != nil {
			return nil, err
		}
		files = append(files, children...)
	}
	return files, nil
}

// resolveExcludes returns the set of paths to drop. Entries that don't
// exist can't be part of the working set and are ignored.
func resolveExcludes(afs fsext.Fs, logger logrus.FieldLogger, excludes []string) (map[string]struct{}, error) {
	set := make(map[string]struct{}, len(excludes))
	for _, p := range excludes {
		p = filepath.Clean(p)
		info, err := afs.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.WithField("file", p).Debug("Ignoring an exclude that doesn't exist")
				continue
			}
			return nil, fmt.Errorf("couldn't access the excluded file %s: %w", p, err)
		}
		if !info.IsDir() {
			set[p] = struct{}{}
			continue
		}
		children, err := listFiles(afs, p)
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			set[c.Path] = struct{}{}
		}
	}
	return set, nil
}

func matchFileSet(afs fsext.Fs, set FileSet) ([]FileSpec, error) {
	root := filepath.Clean(set.Directory)
	var includes, excludes gitignore.IgnoreMatcher
	if len(set.Includes) > 0 {
		includes = gitignore.NewGitIgnoreFromReader(root, strings.NewReader(strings.Join(set.Includes, "\n")))
	}
	if len(set.Excludes) > 0 {
		excludes = gitignore.NewGitIgnoreFromReader(root, strings.NewReader(strings.Join(set.Excludes, "\n")))
	}

	var files []FileSpec
	err := fsext.Walk(afs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if excludes != nil && excludes.Match(path, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if includes == nil || includes.Match(path, false) {
			files = append(files, FileSpec{Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't match the fileset in %s: %w", root, err)
	}
	return files, nil
}

func without(files []FileSpec, drop func(FileSpec) bool) []FileSpec {
	kept := files[:0]
	for _, f := range files {
		if !drop(f) {
			kept = append(kept, f)
		}
	}
	return kept
}
