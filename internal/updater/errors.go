package updater

import (
	"errors"
	"fmt"

	"github.com/fbkclanna/gerritfetch/internal/git"
)

// ErrCommandFailed indicates a git command did not exit cleanly.
var ErrCommandFailed = errors.New("git command failed")

// CommandError carries the status of the git command that failed.
type CommandError struct {
	Status *git.Status
}

func (e *CommandError) Error() string {
	if e.Status.Error != "" {
		return e.Status.Error
	}
	return fmt.Sprintf("%s exited with status %d in %s", e.Status.Command(), e.Status.ExitCode, e.Status.Dir)
}

func (e *CommandError) Unwrap() error {
	return ErrCommandFailed
}
