package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Report formats.
const (
	FormatNone = "none"
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Field is one key/value line of a text report.
type Field struct {
	Key   string
	Value any
}

// Reportable is a value that can also render itself as text fields.
type Reportable interface {
	Fields() []Field
}

// WriteReport encodes r to out in the given format. FormatNone writes nothing.
func WriteReport(out io.Writer, format string, r Reportable) error {
	switch format {
	case FormatNone, "":
		return nil
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return enc.Close()
	case FormatText:
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, f := range r.Fields() {
			_, _ = fmt.Fprintf(tw, "%s:\t%v\n", f.Key, f.Value)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown report format: %q (must be none, text, json, or yaml)", format)
	}
}
