/*
 *
 * jsminify - JavaScript minification for build pipelines
 * Copyright (C) 2024 Dreampie
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */


// Package cmd implements the jsminify command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dreampie/jsminify/cmd/state"
	"github.com/dreampie/jsminify/errext"
	"github.com/dreampie/jsminify/errext/exitcodes"
	"github.com/dreampie/jsminify/lib/consts"
	"github.com/dreampie/jsminify/log"
)

const waitLoggerCloseTimeout = time.Second * 5

// This is to keep all fields needed for the main/root jsminify command
type rootCommand struct {
	globalState *state.GlobalState

	cmd            *cobra.Command
	loggersWg      sync.WaitGroup
	loggerIsRemote bool
	stopLoggersCh  chan struct{}
}

func newRootCommand(gs *state.GlobalState) *rootCommand {
	c := &rootCommand{
		globalState:   gs,
		stopLoggersCh: make(chan struct{}),
	}
	// the base command when called without any subcommands.
	rootCmd := &cobra.Command{
		Use:               gs.BinaryName,
		Short:             "JavaScript minification for build pipelines",
		Long:              "\n" + gs.Console.Banner(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.persistentPreRunE,
		Version:           consts.FullVersion(),
	}
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "v%s\n" .Version}}`)

	rootCmd.PersistentFlags().AddFlagSet(rootCmdPersistentFlagSet(gs))
	rootCmd.SetArgs(gs.CmdArgs[1:])
	rootCmd.SetOut(gs.Console.Out())
	rootCmd.SetErr(gs.Console.Err())
	rootCmd.SetIn(gs.Console.Stdin)

	subCommands := []func(*state.GlobalState) *cobra.Command{
		getCmdMinify, getCmdConfig, getCmdVersion,
	}
	for _, sc := range subCommands {
		rootCmd.AddCommand(sc(gs))
	}

	c.cmd = rootCmd
	return c
}

func (c *rootCommand) persistentPreRunE(_ *cobra.Command, _ []string) error {
	if c.globalState.Flags.NoColor {
		c.globalState.Console.DisableColors()
	}
	if err := c.setupLoggers(c.stopLoggersCh); err != nil {
		return err
	}
	c.globalState.Logger.Debugf("jsminify version: v%s", consts.FullVersion())
	return nil
}

func (c *rootCommand) execute() {
	ctx, cancel := context.WithCancel(c.globalState.Ctx)
	c.globalState.Ctx = ctx

	exitCode := -1
	defer func() {
		cancel()
		c.stopLoggers()
		c.globalState.OSExit(exitCode)
	}()

	err := c.cmd.Execute()
	if err == nil {
		exitCode = 0
		return
	}

	exitCode = int(exitcodes.GenericFailure)
	var ecerr errext.HasExitCode
	if errors.As(err, &ecerr) {
		exitCode = int(ecerr.ExitCode())
	}

	errText, fields := errext.Format(err)
	c.globalState.Logger.WithFields(fields).Error(errText)
	if c.loggerIsRemote {
		c.globalState.FallbackLogger.WithFields(fields).Error(errText)
	}
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	gs := state.NewGlobalState(context.Background())

	newRootCommand(gs).execute()
}

// ExecuteWithGlobalState runs the root command with an existing GlobalState.
// This is needed by integration tests, and we don't want to modify the
// Execute() signature to avoid breaking existing users.
func ExecuteWithGlobalState(gs *state.GlobalState) {
	newRootCommand(gs).execute()
}

func (c *rootCommand) stopLoggers() {
	done := make(chan struct{})
	go func() {
		c.loggersWg.Wait()
		close(done)
	}()
	close(c.stopLoggersCh)
	select {
	case <-done:
	case <-time.After(waitLoggerCloseTimeout):
		c.globalState.FallbackLogger.Errorf("The logger didn't stop in %s", waitLoggerCloseTimeout)
	}
}

func rootCmdPersistentFlagSet(gs *state.GlobalState) *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	// The defaults of the flags are the values consolidated from the
	// environment, the usage message shows the real defaults.
	flags.StringVar(&gs.Flags.LogOutput, "log-output", gs.Flags.LogOutput,
		"change the output for jsminify logs, possible values are stderr,stdout,none,file[=./path.fileformat]")
	flags.Lookup("log-output").DefValue = gs.DefaultFlags.LogOutput

	flags.StringVar(&gs.Flags.LogFormat, "log-format", gs.Flags.LogFormat,
		"log output format, possible values are text,json,raw")
	flags.Lookup("log-format").DefValue = gs.DefaultFlags.LogFormat

	flags.StringVarP(&gs.Flags.ConfigFilePath, "config", "c", gs.Flags.ConfigFilePath,
		"JSON or YAML config file, defaults to jsminify.json or jsminify.yaml in the project directory")
	flags.Lookup("config").DefValue = gs.DefaultFlags.ConfigFilePath
	must(cobra.MarkFlagFilename(flags, "config"))

	flags.BoolVar(&gs.Flags.NoColor, "no-color", gs.Flags.NoColor, "disable colored output")
	flags.Lookup("no-color").DefValue = strconv.FormatBool(gs.DefaultFlags.NoColor)

	flags.BoolVarP(&gs.Flags.Verbose, "verbose", "v", gs.DefaultFlags.Verbose, "enable verbose logging")
	flags.BoolVarP(&gs.Flags.Quiet, "quiet", "q", gs.Flags.Quiet, "disable the banner and the results summary")
	flags.Lookup("quiet").DefValue = strconv.FormatBool(gs.DefaultFlags.Quiet)
	return flags
}

// RawFormatter it does nothing with the message just prints it
type RawFormatter struct{}

// Format renders a single log entry
func (f RawFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return append([]byte(entry.Message), '\n'), nil
}

// setupLoggers configures the logger from the global flags. A file output is
// flushed and closed once stop is closed.
func (c *rootCommand) setupLoggers(stop <-chan struct{}) error {
	gs := c.globalState
	if gs.Flags.Verbose {
		gs.Logger.SetLevel(logrus.DebugLevel)
	}

	loggerForceColors := false
	switch line := gs.Flags.LogOutput; {
	case line == "stderr":
		loggerForceColors = !gs.Flags.NoColor && gs.Console.IsTTY
		gs.Logger.SetOutput(gs.Console.Err())
	case line == "stdout":
		loggerForceColors = !gs.Flags.NoColor && gs.Console.IsTTY
		gs.Logger.SetOutput(gs.Console.Out())
	case line == "none":
		gs.Logger.SetOutput(io.Discard)
	case strings.HasPrefix(line, "file"):
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		hook, err := log.FileHookFromConfigLine(ctx, gs.FS, gs.Getwd, gs.FallbackLogger, line, done)
		if err != nil {
			cancel()
			return errext.WithExitCodeIfNone(err, exitcodes.InvalidConfig)
		}
		gs.Logger.AddHook(hook)
		gs.Logger.SetOutput(io.Discard)
		c.loggerIsRemote = true
		c.loggersWg.Add(1)
		go func() {
			<-stop
			cancel()
			<-done
			c.loggersWg.Done()
		}()
	default:
		return errext.WithExitCodeIfNone(
			fmt.Errorf("unsupported log output '%s'", line), exitcodes.InvalidConfig)
	}

	switch gs.Flags.LogFormat {
	case "raw":
		gs.Logger.SetFormatter(&RawFormatter{})
		gs.Logger.Debug("Logger format: RAW")
	case "json":
		gs.Logger.SetFormatter(&logrus.JSONFormatter{})
		gs.Logger.Debug("Logger format: JSON")
	default:
		gs.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors: loggerForceColors, DisableColors: gs.Flags.NoColor,
		})
		gs.Logger.Debug("Logger format: TEXT")
	}
	return nil
}
