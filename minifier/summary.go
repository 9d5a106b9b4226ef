package minifier

import (
	"encoding/json"

	"github.com/dreampie/jsminify/lib/fsext"
)

// Summary is the machine readable record of a run.
type Summary struct {
	Mode    string     `json:"mode"`
	Engine  string     `json:"engine"`
	Level   string     `json:"level"`
	Inputs  int        `json:"inputs"`
	Outputs []Artifact `json:"outputs"`
}

// WriteSummary stores s as indented JSON at path.
func WriteSummary(fs fsext.Fs, path string, s Summary) error {
	if s.Outputs == nil {
		s.Outputs = []Artifact{}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := fsext.WriteFile(fs, path, append(data, '\n'), 0o644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
