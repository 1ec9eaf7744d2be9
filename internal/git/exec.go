package git

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Status records how a single git invocation ended.
type Status struct {
	Args     []string `json:"args" yaml:"args"`
	Dir      string   `json:"dir" yaml:"dir"`
	ExitCode int      `json:"exit_code" yaml:"exit_code"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
	DryRun   bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
}

// OK reports whether the command ran and exited 0. Dry-run statuses count as OK.
func (s *Status) OK() bool {
	return s != nil && s.Error == "" && s.ExitCode == 0
}

// Command returns the command line as it would be typed in a shell.
func (s *Status) Command() string {
	return "git " + strings.Join(s.Args, " ")
}

// Runner runs git with args inside dir and waits for it to exit.
type Runner interface {
	Run(dir string, args ...string) *Status
}

// ExecRunner runs the git binary found on PATH.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes git in dir. A non-zero exit is reported through ExitCode;
// Error is only set when git could not be started at all.
func (r *ExecRunner) Run(dir string, args ...string) *Status {
	st := &Status{Args: args, Dir: dir}

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			st.ExitCode = exitErr.ExitCode()
			return st
		}
		st.ExitCode = -1
		st.Error = fmt.Sprintf("git %s: %v", strings.Join(args, " "), err)
	}
	return st
}

// DryRunner records what would run without starting any process.
type DryRunner struct{}

// Run returns a successful dry-run status for the command.
func (DryRunner) Run(dir string, args ...string) *Status {
	return &Status{Args: args, Dir: dir, DryRun: true}
}

// output executes a git command and returns its stdout.
func output(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
