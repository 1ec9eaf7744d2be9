package ui

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

// Check is the result of one diagnostic probe.
type Check struct {
	Name     string
	OK       bool
	Required bool
	Detail   string
}

// Checklist renders checks in aligned columns with a colored status.
type Checklist struct {
	w      *tabwriter.Writer
	ok     lipgloss.Style
	warn   lipgloss.Style
	fail   lipgloss.Style
	failed int
}

// NewChecklist creates a checklist writing to out. Colors are only emitted
// when out is a terminal.
func NewChecklist(out io.Writer) *Checklist {
	r := lipgloss.NewRenderer(out)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CHECK\tDETAIL\tSTATUS")
	return &Checklist{
		w:    tw,
		ok:   r.NewStyle().Foreground(lipgloss.Color("2")),
		warn: r.NewStyle().Foreground(lipgloss.Color("3")),
		fail: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// Add appends a check. Failed required checks are counted by Failed.
func (c *Checklist) Add(ch Check) {
	var status string
	switch {
	case ch.OK:
		status = c.ok.Render("ok")
	case ch.Required:
		status = c.fail.Render("FAIL")
		c.failed++
	default:
		status = c.warn.Render("warn")
	}
	_, _ = fmt.Fprintf(c.w, "%s\t%s\t%s\n", ch.Name, ch.Detail, status)
}

// Failed returns the number of required checks that did not pass.
func (c *Checklist) Failed() int {
	return c.failed
}

// Flush writes the buffered output.
func (c *Checklist) Flush() error {
	return c.w.Flush()
}
