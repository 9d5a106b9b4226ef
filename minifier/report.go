package minifier

import (
	"github.com/sirupsen/logrus"

	"github.com/dreampie/jsminify/js/compiler"
)

// Report logs the diagnostics of a compilation and turns an unsuccessful one
// into a *CompilationError.
func Report(logger logrus.FieldLogger, res *compiler.Result, destination string) error {
	if res.DebugLog != "" {
		logger.Debug(res.DebugLog)
	}
	for _, d := range res.Errors {
		logger.WithFields(diagnosticFields(d)).Error("Minifier error")
	}
	for _, d := range res.Warnings {
		logger.WithFields(diagnosticFields(d)).Info("Minifier warning")
	}
	if !res.Success {
		return &CompilationError{Destination: destination, Errors: res.Errors}
	}
	return nil
}

func diagnosticFields(d compiler.Diagnostic) logrus.Fields {
	fields := logrus.Fields{"source": d.SourceName, "description": d.Description}
	if d.Line > 0 {
		fields["line"] = d.Line
		fields["column"] = d.Column
	}
	return fields
}
