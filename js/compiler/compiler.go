// Package compiler wraps the external JavaScript optimizers used by jsminify.
// The optimizers themselves are black boxes: this package only feeds them
// sources, collects their diagnostics and hands back the produced code.
package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is a named bundle of optimization passes.
type Level uint8

// Known optimization levels. Only LevelSimple is accepted by Options.Validate:
// it is the one that is safe without whole-program visibility, while still
// doing more than a passthrough.
const (
	LevelWhitespaceOnly Level = iota + 1
	LevelSimple
	LevelAdvanced
)

func (l Level) String() string {
	switch l {
	case LevelWhitespaceOnly:
		return "WHITESPACE_ONLY"
	case LevelSimple:
		return "SIMPLE_OPTIMIZATIONS"
	case LevelAdvanced:
		return "ADVANCED_OPTIMIZATIONS"
	default:
		return fmt.Sprintf("Level(%d)", uint8(l))
	}
}

// Options is the compilation profile handed to a Compiler.
type Options struct {
	Level Level
	// SourceMap asks for an external source map. It is only honored for
	// single-input compilations.
	SourceMap bool
}

// DefaultOptions returns the fixed profile jsminify compiles with.
func DefaultOptions() Options {
	return Options{Level: LevelSimple}
}

// Validate checks that the profile can be used.
func (o Options) Validate() error {
	if o.Level != LevelSimple {
		return fmt.Errorf("compilation level %s is invalid, only %s is supported", o.Level, LevelSimple)
	}
	return nil
}

// Source is a named piece of JavaScript code.
type Source struct {
	Name string
	Code string
}

// Diagnostic is a single error or warning reported by a compiler.
type Diagnostic struct {
	SourceName  string
	Description string
	// Line and Column are 1-based and zero when unknown.
	Line   int
	Column int
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", d.SourceName, d.Line, d.Column, d.Description)
	}
	return fmt.Sprintf("%s: %s", d.SourceName, d.Description)
}

// Result is the outcome of one compilation job.
type Result struct {
	Success  bool
	Errors   []Diagnostic
	Warnings []Diagnostic
	DebugLog string

	code      string
	sourceMap []byte
}

// ToSource returns the optimized program. It is empty for failed compilations.
func (r *Result) ToSource() string {
	return r.code
}

// SourceMap returns the external source map, if one was produced.
func (r *Result) SourceMap() []byte {
	return r.sourceMap
}

// A Compiler turns a list of inputs into a single optimized program. Externs
// describe the runtime globals the inputs may use without declaring them.
type Compiler interface {
	Name() string
	Compile(externs *Externs, inputs []Source, opts Options) *Result
}

//nolint:gochecknoglobals
var engines = map[string]func(logrus.FieldLogger) Compiler{
	EngineEsbuild:  func(l logrus.FieldLogger) Compiler { return NewEsbuild(l) },
	EngineTdewolff: func(l logrus.FieldLogger) Compiler { return NewTdewolff(l) },
}

// New returns the compiler registered under the given engine name.
func New(engine string, logger logrus.FieldLogger) (Compiler, error) {
	constructor, ok := engines[engine]
	if !ok {
		return nil, fmt.Errorf("unknown compiler engine %q, supported engines are %s",
			engine, strings.Join(Engines(), ", "))
	}
	return constructor(logger), nil
}

// Engines lists the supported engine names.
func Engines() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// finish fills in the parts of a Result that are shared by every engine.
func finish(res *Result, code string, externs *Externs, inputs []Source) {
	res.Success = len(res.Errors) == 0
	if !res.Success {
		res.sourceMap = nil
		return
	}
	res.code = code
	res.Warnings = append(res.Warnings, undeclaredGlobals(externs, inputs)...)
}

// appendChunk joins per-input output, keeping every chunk on its own line and
// ending it with a statement terminator so the next chunk can't continue it.
func appendChunk(b *strings.Builder, chunk string) {
	chunk = strings.TrimRight(chunk, " \t\r\n")
	if chunk == "" {
		return
	}
	b.WriteString(chunk)
	if !strings.HasSuffix(chunk, ";") {
		b.WriteByte(';')
	}
	b.WriteByte('\n')
}
