// Package minifier drives the JavaScript compiler over a resolved set of
// files and writes the results.
package minifier

import (
	"context"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/dreampie/jsminify/js/compiler"
	"github.com/dreampie/jsminify/lib/fileset"
	"github.com/dreampie/jsminify/lib/fsext"
)

// Settings are the output related knobs of a Minifier.
type Settings struct {
	SourceRoot string
	OutputRoot string
	SourceMap  bool
	Compress   []string
	Verify     bool
}

// Artifact describes one written output.
type Artifact struct {
	Sources     []string `json:"sources"`
	Destination string   `json:"destination"`
	InputBytes  int      `json:"inputBytes"`
	OutputBytes int      `json:"outputBytes"`
	Warnings    int      `json:"warnings"`
	Siblings    []string `json:"siblings,omitempty"`
}

// Minifier runs compilation jobs and writes their outputs. Jobs run
// sequentially.
type Minifier struct {
	logger   logrus.FieldLogger
	fs       fsext.Fs
	compiler compiler.Compiler
	externs  *compiler.Externs
	options  compiler.Options
	settings Settings

	artifacts []Artifact
}

// New returns a Minifier compiling with the fixed SIMPLE profile.
func New(
	logger logrus.FieldLogger, fs fsext.Fs, c compiler.Compiler, externs *compiler.Externs, settings Settings,
) *Minifier {
	return &Minifier{
		logger:   logger,
		fs:       fs,
		compiler: c,
		externs:  externs,
		options:  compiler.DefaultOptions(),
		settings: settings,
	}
}

// CompileMerged compiles all files as one job into destination.
func (m *Minifier) CompileMerged(ctx context.Context, files []fileset.FileSpec, destination string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	parent := filepath.Dir(destination)
	if err := m.fs.MkdirAll(parent, 0o755); err != nil {
		return &IOError{Op: "create directory", Path: parent, Err: err}
	}
	return m.compile(files, destination, false)
}

// CompilePerFile compiles every file on its own into the output root. The
// first failure stops the remaining jobs; outputs written before it stay.
func (m *Minifier) CompilePerFile(ctx context.Context, files []fileset.FileSpec) error {
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		dest, err := MapToDestination(m.fs, f, m.settings.SourceRoot, m.settings.OutputRoot)
		if err != nil {
			return err
		}
		if err := m.compile([]fileset.FileSpec{f}, dest.Path, m.settings.SourceMap); err != nil {
			return err
		}
	}
	return nil
}

// Artifacts returns the outputs written so far.
func (m *Minifier) Artifacts() []Artifact {
	return m.artifacts
}

func (m *Minifier) compile(files []fileset.FileSpec, dest string, withMap bool) error {
	logger := m.logger.WithField("destination", dest)

	sources := make([]compiler.Source, 0, len(files))
	names := make([]string, 0, len(files))
	inputBytes := 0
	for _, f := range files {
		data, err := fsext.ReadFile(m.fs, f.Path)
		if err != nil {
			return &IOError{Op: "read", Path: f.Path, Err: err}
		}
		name := f.Path
		if withMap {
			name = relativeSource(dest, f.Path)
		}
		sources = append(sources, compiler.Source{Name: name, Code: string(data)})
		names = append(names, f.Path)
		inputBytes += len(data)
	}

	opts := m.options
	opts.SourceMap = withMap
	res := m.compiler.Compile(m.externs, sources, opts)
	if err := Report(logger, res, dest); err != nil {
		return err
	}

	code := res.ToSource()
	if m.settings.Verify {
		if err := compiler.Verify(dest, code); err != nil {
			return &CompilationError{
				Destination: dest,
				Errors:      []compiler.Diagnostic{{SourceName: dest, Description: err.Error()}},
			}
		}
	}

	sourceMap := res.SourceMap()
	if len(sourceMap) > 0 {
		comment, err := sourceMapComment(dest, sourceMap)
		if err != nil {
			return err
		}
		code += comment
	}

	if err := fsext.WriteFile(m.fs, dest, []byte(code), 0o644); err != nil {
		return &IOError{Op: "write", Path: dest, Err: err}
	}

	var siblings []string
	if len(sourceMap) > 0 {
		mapPath := dest + ".map"
		if err := fsext.WriteFile(m.fs, mapPath, sourceMap, 0o644); err != nil {
			return &IOError{Op: "write", Path: mapPath, Err: err}
		}
		siblings = append(siblings, mapPath)
	}
	compressed, err := compress(m.fs, dest, []byte(code), m.settings.Compress)
	if err != nil {
		return err
	}
	siblings = append(siblings, compressed...)

	logger.WithFields(logrus.Fields{
		"inputs":      len(files),
		"inputBytes":  inputBytes,
		"outputBytes": len(code),
	}).Info("Minified")

	m.artifacts = append(m.artifacts, Artifact{
		Sources:     names,
		Destination: dest,
		InputBytes:  inputBytes,
		OutputBytes: len(code),
		Warnings:    len(res.Warnings),
		Siblings:    siblings,
	})
	return nil
}

// relativeSource names src the way a source map next to dest refers to it.
func relativeSource(dest, src string) string {
	rel, err := filepath.Rel(filepath.Dir(dest), src)
	if err != nil {
		return src
	}
	return filepath.ToSlash(rel)
}
