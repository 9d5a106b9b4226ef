// Package errext contains extensions for normal Go errors that are used in jsminify.
package errext

import (
	"errors"
)

// Format formats the given error as a message (string) and a map of fields.
// In case of [HasHint], it also adds the hint as a field.
func Format(err error) (string, map[string]interface{}) {
	if err == nil {
		return "", nil
	}

	fields := make(map[string]interface{})
	var herr HasHint
	if errors.As(err, &herr) {
		fields["hint"] = herr.Hint()
	}

	return err.Error(), fields
}
