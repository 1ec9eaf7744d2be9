// Package app wires the environment reader to the repository updater.
package app

import (
	"fmt"

	"github.com/fbkclanna/gerritfetch/internal/change"
	"github.com/fbkclanna/gerritfetch/internal/logging"
	"github.com/fbkclanna/gerritfetch/internal/ui"
	"github.com/fbkclanna/gerritfetch/internal/updater"
)

// RepoUpdater applies a change to the working copy under basedir.
type RepoUpdater interface {
	Update(basedir string, req change.Request) (*updater.Outcome, error)
}

// Options configures a run.
type Options struct {
	BaseDir      string
	Lookup       change.LookupFunc
	AllowedHosts []string
	// Strict turns a failing git fetch or checkout into a returned error.
	Strict bool
}

// Report is what a run did.
type Report struct {
	Change  change.Result    `json:"change" yaml:"change"`
	Outcome *updater.Outcome `json:"outcome,omitempty" yaml:"outcome,omitempty"`
}

// Run reads the change from the environment and, only when it is runnable,
// hands it to up. Skipped changes and missing working copies are not errors.
func Run(opts Options, up RepoUpdater, log *logging.Logger) (*Report, error) {
	if log == nil {
		log = logging.Nop()
	}
	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = "."
	}

	log.Warn().Msg("getting git changes")

	res := change.Read(opts.Lookup, opts.AllowedHosts, log)
	rep := &Report{Change: res}
	if !res.IsRunnable() {
		return rep, nil
	}

	out, err := up.Update(baseDir, *res.Request)
	rep.Outcome = out
	if err != nil {
		return rep, fmt.Errorf("updating %s: %w", res.Request.Project, err)
	}

	if opts.Strict {
		if err := out.Err(); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

// Fields implements ui.Reportable.
func (r *Report) Fields() []ui.Field {
	if !r.Change.IsRunnable() {
		fields := []ui.Field{{Key: "status", Value: "skipped"}, {Key: "reason", Value: r.Change.Reason}}
		if len(r.Change.Missing) > 0 {
			fields = append(fields, ui.Field{Key: "missing", Value: r.Change.Missing})
		}
		return fields
	}

	req := r.Change.Request
	fields := []ui.Field{
		{Key: "host", Value: req.Host},
		{Key: "project", Value: req.Project},
		{Key: "refspec", Value: req.Refspec},
	}

	out := r.Outcome
	switch {
	case out == nil:
		return append(fields, ui.Field{Key: "status", Value: "error"})
	case out.Skipped:
		return append(fields,
			ui.Field{Key: "dir", Value: out.Dir},
			ui.Field{Key: "status", Value: "skipped"},
			ui.Field{Key: "reason", Value: out.Reason},
		)
	}

	status := "ok"
	if !out.Succeeded() {
		status = "failed"
	}
	fields = append(fields, ui.Field{Key: "dir", Value: out.Dir})
	if out.Fetch != nil {
		fields = append(fields, ui.Field{Key: "fetch", Value: commandSummary(out.Fetch.Command(), out.Fetch.ExitCode, out.Fetch.DryRun)})
	}
	if out.Checkout != nil {
		fields = append(fields, ui.Field{Key: "checkout", Value: commandSummary(out.Checkout.Command(), out.Checkout.ExitCode, out.Checkout.DryRun)})
	}
	if out.HeadBefore != "" {
		fields = append(fields, ui.Field{Key: "head before", Value: out.HeadBefore})
	}
	if out.HeadAfter != "" {
		fields = append(fields, ui.Field{Key: "head after", Value: out.HeadAfter})
	}
	return append(fields, ui.Field{Key: "status", Value: status})
}

func commandSummary(cmd string, exitCode int, dryRun bool) string {
	if dryRun {
		return cmd + " (dry run)"
	}
	return fmt.Sprintf("%s (exit %d)", cmd, exitCode)
}
