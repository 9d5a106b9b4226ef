package compiler

import (
	"fmt"
	"strings"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/sirupsen/logrus"
)

// EngineEsbuild is the name of the esbuild backed compiler.
const EngineEsbuild = "esbuild"

// Esbuild compiles with esbuild's transform API. Without an output format
// esbuild treats every input as a classic script, so top-level names stay
// untouched and only local bindings get renamed.
type Esbuild struct {
	logger logrus.FieldLogger
}

var _ Compiler = &Esbuild{}

// NewEsbuild returns a new esbuild compiler.
func NewEsbuild(logger logrus.FieldLogger) *Esbuild {
	return &Esbuild{logger: logger.WithField("engine", EngineEsbuild)}
}

// Name implements Compiler.
func (e *Esbuild) Name() string {
	return EngineEsbuild
}

// Compile implements Compiler.
func (e *Esbuild) Compile(externs *Externs, inputs []Source, opts Options) *Result {
	start := time.Now()
	res := &Result{}
	withMap := opts.SourceMap && len(inputs) == 1

	var code strings.Builder
	for _, in := range inputs {
		tr := api.Transform(in.Code, transformOptions(in.Name, withMap))
		res.Warnings = append(res.Warnings, esbuildDiagnostics(in.Name, tr.Warnings)...)
		if len(tr.Errors) > 0 {
			e.logger.WithField("input", in.Name).Debug("Input failed to compile, leaving it out")
			res.Errors = append(res.Errors, esbuildDiagnostics(in.Name, tr.Errors)...)
			continue
		}
		appendChunk(&code, string(tr.Code))
		if withMap {
			res.sourceMap = tr.Map
		}
	}

	finish(res, code.String(), externs, inputs)
	res.DebugLog = fmt.Sprintf("esbuild %s: %d input(s), %d extern(s), %d error(s), %d warning(s) in %s",
		opts.Level, len(inputs), externs.Len(), len(res.Errors), len(res.Warnings), time.Since(start))
	return res
}

func transformOptions(filename string, withMap bool) api.TransformOptions {
	opts := api.TransformOptions{
		Sourcefile:        filename,
		Loader:            api.LoaderJS,
		Target:            api.ESNext,
		Platform:          api.PlatformNeutral,
		Charset:           api.CharsetUTF8,
		LegalComments:     api.LegalCommentsInline,
		LogLevel:          api.LogLevelSilent,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
	}
	if withMap {
		opts.Sourcemap = api.SourceMapExternal
		opts.SourcesContent = api.SourcesContentInclude
	}
	return opts
}

func esbuildDiagnostics(sourceName string, msgs []api.Message) []Diagnostic {
	if len(msgs) == 0 {
		return nil
	}
	diags := make([]Diagnostic, 0, len(msgs))
	for _, msg := range msgs {
		d := Diagnostic{SourceName: sourceName, Description: msg.Text}
		if msg.Location != nil {
			if msg.Location.File != "" {
				d.SourceName = msg.Location.File
			}
			d.Line = msg.Location.Line
			// esbuild columns are 0-based
			d.Column = msg.Location.Column + 1
		}
		diags = append(diags, d)
	}
	return diags
}
