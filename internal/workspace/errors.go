package workspace

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedProject indicates a project identifier without an <org>/<name> shape.
	ErrMalformedProject = errors.New("malformed project identifier")

	// ErrDirectoryMissing indicates the project's working copy directory does not exist.
	ErrDirectoryMissing = errors.New("directory not found")
)

// ProjectError reports a project identifier that cannot be mapped to a folder.
type ProjectError struct {
	Project string
	Err     error
}

func (e *ProjectError) Error() string {
	return fmt.Sprintf("project %q: %v (expected <org>/<name>)", e.Project, e.Err)
}

func (e *ProjectError) Unwrap() error {
	return e.Err
}
