package compiler

import (
	"fmt"

	"github.com/dop251/goja"
)

// Verify checks that the optimized program still compiles as a script.
func Verify(name, code string) error {
	if _, err := goja.Compile(name, code, false); err != nil {
		return fmt.Errorf("optimized output of %s doesn't compile: %w", name, err)
	}
	return nil
}
