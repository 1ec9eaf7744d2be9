package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type sample struct {
	Project string `json:"project" yaml:"project"`
	Exit    int    `json:"exit" yaml:"exit"`
}

func (s sample) Fields() []Field {
	return []Field{{Key: "project", Value: s.Project}, {Key: "exit", Value: s.Exit}}
}

func TestWriteReport(t *testing.T) {
	s := sample{Project: "org/repoA", Exit: 0}

	t.Run("none", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteReport(&buf, FormatNone, s); err != nil {
			t.Fatal(err)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteReport(&buf, FormatJSON, s); err != nil {
			t.Fatal(err)
		}
		var got sample
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid json %q: %v", buf.String(), err)
		}
		if got != s {
			t.Errorf("got %+v, want %+v", got, s)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteReport(&buf, FormatYAML, s); err != nil {
			t.Fatal(err)
		}
		var got sample
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid yaml %q: %v", buf.String(), err)
		}
		if got != s {
			t.Errorf("got %+v, want %+v", got, s)
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteReport(&buf, FormatText, s); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		if !strings.Contains(out, "project:") || !strings.Contains(out, "org/repoA") {
			t.Errorf("missing project line: %q", out)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := WriteReport(&bytes.Buffer{}, "xml", s); err == nil {
			t.Fatal("expected error for unknown format")
		}
	})
}
