package minifier

import (
	"fmt"
	"strings"

	"github.com/dreampie/jsminify/errext"
	"github.com/dreampie/jsminify/errext/exitcodes"
	"github.com/dreampie/jsminify/js/compiler"
)

// ConfigError is returned when the run can't even start: the configuration,
// the compilation profile or the externs are unusable.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExitCode implements errext.HasExitCode.
func (e *ConfigError) ExitCode() exitcodes.ExitCode {
	return exitcodes.InvalidConfig
}

// CompilationError is returned when the compiler rejected a job. Nothing is
// written for that job.
type CompilationError struct {
	Destination string
	Errors      []compiler.Diagnostic
}

func (e *CompilationError) Error() string {
	descriptions := make([]string, 0, len(e.Errors))
	for _, d := range e.Errors {
		descriptions = append(descriptions, d.String())
	}
	return fmt.Sprintf("compilation of %s failed with %d error(s): %s",
		e.Destination, len(e.Errors), strings.Join(descriptions, "; "))
}

// ExitCode implements errext.HasExitCode.
func (e *CompilationError) ExitCode() exitcodes.ExitCode {
	return exitcodes.CompilationFailed
}

// Hint implements errext.HasHint.
func (e *CompilationError) Hint() string {
	return "fix the reported errors, the previous outputs were left untouched"
}

// IOError is returned when an input can't be read or an output can't be
// written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("couldn't %s %s: %s", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// ExitCode implements errext.HasExitCode.
func (e *IOError) ExitCode() exitcodes.ExitCode {
	return exitcodes.OutputFailed
}

var (
	_ errext.HasExitCode = &ConfigError{}
	_ errext.HasExitCode = &CompilationError{}
	_ errext.HasHint     = &CompilationError{}
	_ errext.HasExitCode = &IOError{}
)
