package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Context holds the resolved base directory that per-project working copies live under.
type Context struct {
	Root string
}

// Load resolves root to an absolute path. The directory itself is not required to exist.
func Load(root string) (*Context, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving base directory: %w", err)
	}
	return &Context{Root: abs}, nil
}

// ProjectFolder returns the folder name for a project, the second
// slash-delimited segment of <org>/<name>. Further segments are ignored.
func ProjectFolder(project string) (string, error) {
	parts := strings.Split(project, "/")
	if len(parts) < 2 {
		return "", &ProjectError{Project: project, Err: ErrMalformedProject}
	}
	folder := parts[1]
	switch folder {
	case "", ".", "..":
		return "", &ProjectError{Project: project, Err: ErrMalformedProject}
	}
	return folder, nil
}

// ProjectDir returns the absolute path of the project's working copy.
func (c *Context) ProjectDir(project string) (string, error) {
	folder, err := ProjectFolder(project)
	if err != nil {
		return "", err
	}
	return filepath.Join(c.Root, folder), nil
}

// CheckDir returns an error wrapping ErrDirectoryMissing unless dir is an existing directory.
func CheckDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDirectoryMissing, dir)
		}
		return fmt.Errorf("checking %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrDirectoryMissing, dir)
	}
	return nil
}
