// Package ui renders drip's command output.
//
// Every command result can be printed as styled terminal output, plain text,
// JSON or YAML. Styling uses lipgloss with adaptive colors read from the
// embedded styles.yaml. Install progress is one line per step, prefixed
// with pterm's Info, Success and Error labels on a terminal.
package ui

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteJSON writes v as indented JSON followed by a newline
func WriteJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteYAML writes v as a YAML document
func WriteYAML(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// WriteData writes v in a machine-readable format. It reports false when
// format is not JSON or YAML so the caller can render text instead.
func WriteData(w io.Writer, format Format, v interface{}) (bool, error) {
	switch format {
	case FormatJSON:
		return true, WriteJSON(w, v)
	case FormatYAML:
		return true, WriteYAML(w, v)
	default:
		return false, nil
	}
}
