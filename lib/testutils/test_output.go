// Package testutils contains helpers shared by the jsminify tests.
package testutils

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

// Something that makes the test also be a valid io.Writer, useful for passing it
// as an output for logs and CLI flag help messages...
type testOutput struct{ testing.TB }

func (to testOutput) Write(p []byte) (n int, err error) {
	to.Logf("%s", p)

	return len(p), nil
}

// NewTestOutput returns a simple io.Writer implementation that uses the test's
// logger as an output.
func NewTestOutput(t testing.TB) io.Writer {
	return testOutput{t}
}

// NewLogger returns a new debug-level logger that writes to testing.TB.Logf.
func NewLogger(t testing.TB) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(NewTestOutput(t))
	l.SetLevel(logrus.DebugLevel)

	return l
}

// NewLoggerWithHook is NewLogger with a SimpleLogrusHook attached for all levels.
func NewLoggerWithHook(t testing.TB) (*logrus.Logger, *SimpleLogrusHook) {
	l := NewLogger(t)
	hook := NewLogHook()
	l.AddHook(hook)

	return l, hook
}
