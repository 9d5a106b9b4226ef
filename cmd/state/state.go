// Package state contains the process wide state every jsminify command
// works with, so tests can swap it out.
package state

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dreampie/jsminify/lib/fsext"
	"github.com/dreampie/jsminify/ui/console"
)

// GlobalState contains the GlobalOptions and accessors for the OS
// environment, the file system and the standard streams. Commands must go
// through it instead of touching the os package directly.
type GlobalState struct {
	Ctx context.Context

	FS         fsext.Fs
	Getwd      func() (string, error)
	BinaryName string
	CmdArgs    []string
	Env        map[string]string

	DefaultFlags, Flags GlobalOptions

	Console *console.Console
	OSExit  func(int)

	Logger         *logrus.Logger
	FallbackLogger logrus.FieldLogger
}

// NewGlobalState returns a new GlobalState with the real OS implementations.
func NewGlobalState(ctx context.Context) *GlobalState {
	env := BuildEnvMap(os.Environ())
	defaultFlags := GetDefaultGlobalOptions()
	globalFlags := consolidateGlobalFlags(defaultFlags, env)

	cons := console.New(os.Stdout, os.Stderr, os.Stdin, !globalFlags.NoColor, env["TERM"])

	binary, err := os.Executable()
	if err != nil {
		binary = "jsminify"
	}

	return &GlobalState{
		Ctx:          ctx,
		FS:           fsext.NewOsFs(),
		Getwd:        os.Getwd,
		BinaryName:   filepath.Base(binary),
		CmdArgs:      os.Args,
		Env:          env,
		DefaultFlags: defaultFlags,
		Flags:        globalFlags,
		Console:      cons,
		OSExit:       os.Exit,
		Logger:       cons.GetLogger(),
		FallbackLogger: &logrus.Logger{ // we may modify the other one
			Out:       os.Stderr,
			Formatter: new(logrus.TextFormatter), // no fancy formatting here
			Hooks:     make(logrus.LevelHooks),
			Level:     logrus.InfoLevel,
		},
	}
}

// BuildEnvMap returns a map from raw environment variable pairs.
func BuildEnvMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, _ := strings.Cut(kv, "=")
		env[k] = v
	}
	return env
}
