package tests

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreampie/jsminify/cmd/state"
	"github.com/dreampie/jsminify/lib/fsext"
	"github.com/dreampie/jsminify/lib/testutils"
	"github.com/dreampie/jsminify/ui/console"
)

// GlobalTestState is a wrapper around GlobalState for use in tests.
type GlobalTestState struct {
	*state.GlobalState
	Cancel func()

	Stdout, Stderr *safeBuffer
	LoggerHook     *testutils.SimpleLogrusHook

	Cwd string

	ExpectedExitCode int
}

// NewGlobalTestState returns an initialized GlobalTestState, mocking all
// GlobalState fields for use in tests.
func NewGlobalTestState(tb testing.TB) *GlobalTestState {
	tb.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	tb.Cleanup(cancel)

	fs := fsext.NewMemMapFs()
	cwd := "/test/"
	if filepath.Separator == '\\' {
		cwd = "c:\\test\\"
	}
	require.NoError(tb, fs.MkdirAll(cwd, 0o755))

	ts := &GlobalTestState{
		Cwd:    cwd,
		Cancel: cancel,
		Stdout: new(safeBuffer),
		Stderr: new(safeBuffer),
	}

	cons := console.New(ts.Stdout, ts.Stderr, &testStdin{}, false, "")
	logger := cons.GetLogger()
	logger.SetLevel(logrus.InfoLevel)
	ts.LoggerHook = testutils.NewLogHook(logrus.AllLevels...)
	logger.AddHook(ts.LoggerHook)

	defaultFlags := state.GetDefaultGlobalOptions()
	defaultFlags.NoColor = true

	ts.GlobalState = &state.GlobalState{
		Ctx:          ctx,
		FS:           fs,
		Getwd:        func() (string, error) { return ts.Cwd, nil },
		BinaryName:   "jsminify",
		CmdArgs:      []string{},
		Env:          map[string]string{},
		DefaultFlags: defaultFlags,
		Flags:        defaultFlags,
		Console:      cons,
		OSExit: func(code int) {
			tb.Logf("OSExit called with code %d", code)
			assert.Equal(tb, ts.ExpectedExitCode, code)
		},
		Logger:         logger,
		FallbackLogger: testutils.NewLogger(tb).WithField("fallback", true),
	}

	return ts
}

// safeBuffer is a bytes.Buffer usable as a console file.
type safeBuffer struct {
	mx  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.buf.String()
}

func (b *safeBuffer) Bytes() []byte {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.buf.Bytes()
}

func (b *safeBuffer) Fd() uintptr {
	return ^uintptr(0)
}

type testStdin struct{}

func (testStdin) Read([]byte) (int, error) {
	return 0, os.ErrClosed
}

func (testStdin) Fd() uintptr {
	return ^uintptr(0)
}
