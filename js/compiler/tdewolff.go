package compiler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/parse/v2"
)

// EngineTdewolff is the name of the tdewolff/minify backed compiler.
const EngineTdewolff = "tdewolff"

const jsMediaType = "application/javascript"

// Tdewolff compiles with the tdewolff/minify JavaScript minifier. It never
// produces source maps.
type Tdewolff struct {
	logger logrus.FieldLogger
	m      *minify.M
}

var _ Compiler = &Tdewolff{}

// NewTdewolff returns a new tdewolff/minify compiler.
func NewTdewolff(logger logrus.FieldLogger) *Tdewolff {
	m := minify.New()
	m.Add(jsMediaType, &js.Minifier{})
	return &Tdewolff{logger: logger.WithField("engine", EngineTdewolff), m: m}
}

// Name implements Compiler.
func (t *Tdewolff) Name() string {
	return EngineTdewolff
}

// Compile implements Compiler.
func (t *Tdewolff) Compile(externs *Externs, inputs []Source, opts Options) *Result {
	start := time.Now()
	res := &Result{}
	if opts.SourceMap {
		res.Warnings = append(res.Warnings, Diagnostic{
			SourceName:  EngineTdewolff,
			Description: "source maps are not supported by this engine and were not generated",
		})
	}

	var code strings.Builder
	for _, in := range inputs {
		out, err := t.m.String(jsMediaType, in.Code)
		if err != nil {
			t.logger.WithField("input", in.Name).Debug("Input failed to compile, leaving it out")
			res.Errors = append(res.Errors, tdewolffDiagnostic(in.Name, err))
			continue
		}
		appendChunk(&code, out)
	}

	finish(res, code.String(), externs, inputs)
	res.DebugLog = fmt.Sprintf("tdewolff %s: %d input(s), %d extern(s), %d error(s), %d warning(s) in %s",
		opts.Level, len(inputs), externs.Len(), len(res.Errors), len(res.Warnings), time.Since(start))
	return res
}

func tdewolffDiagnostic(sourceName string, err error) Diagnostic {
	var perr *parse.Error
	if errors.As(err, &perr) {
		return Diagnostic{
			SourceName:  sourceName,
			Description: perr.Message,
			Line:        perr.Line,
			Column:      perr.Column,
		}
	}
	return Diagnostic{SourceName: sourceName, Description: err.Error()}
}
