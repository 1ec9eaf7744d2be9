package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// FetchHead is the ref git leaves pointing at the most recently fetched commit.
const FetchHead = "FETCH_HEAD"

// RemoteURL returns the https URL a review host serves a project under.
func RemoteURL(host, project string) string {
	return fmt.Sprintf("https://%s/%s", host, project)
}

// Fetch runs git fetch <url> <refspec> in the given repo directory.
func Fetch(r Runner, repoDir, url, refspec string) *Status {
	return r.Run(repoDir, "fetch", url, refspec)
}

// Checkout checks out the given ref.
func Checkout(r Runner, repoDir, ref string) *Status {
	return r.Run(repoDir, "checkout", ref)
}

// IsCloned returns true if the directory is a git working copy.
// A .git file (worktrees, submodules) counts as well as a .git directory.
func IsCloned(repoDir string) bool {
	_, err := os.Stat(filepath.Join(repoDir, ".git"))
	return err == nil
}

// IsDirty returns true if the working tree has uncommitted changes.
func IsDirty(repoDir string) (bool, error) {
	out, err := output(repoDir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// LookPath returns the path of the git binary found on PATH.
func LookPath() (string, error) {
	return exec.LookPath("git")
}

// Version returns the output of git version, e.g. "git version 2.43.0".
func Version() (string, error) {
	out, err := output(".", "version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
