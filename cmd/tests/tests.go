// Package tests contains end-to-end tests of the jsminify commands.
package tests

import (
	"fmt"
	"os"
	"testing"

	"go.uber.org/goleak"
)

// Main is a TestMain function that can be imported by other test packages
// that run the commands, it fails the run when goroutines are leaked.
func Main(m *testing.M) {
	exitCode := 1 // error out by default
	defer func() {
		os.Exit(exitCode)
	}()

	defer func() {
		// TODO: figure out why logrus' `Entry.WriterLevel` goroutine sticks
		// around and remove this exception.
		opt := goleak.IgnoreTopFunction("io.(*pipe).read")
		if err := goleak.Find(opt); err != nil {
			fmt.Println(err) //nolint:forbidigo
			exitCode = 3
		}
	}()

	exitCode = m.Run()
}
