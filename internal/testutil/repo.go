package testutil

import (
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"testing"
)

// GerritRemote is a local directory tree standing in for a review host.
// Root plays the part of https://<host>/ and the project lives at Root/<project>.
type GerritRemote struct {
	Root    string
	Project string
	Ref     string // change ref, e.g. refs/changes/12/1234/1
	Commit  string // full hash Ref points at
	Main    string // full hash of main
}

// URL returns the local path git can fetch the project from.
func (g *GerritRemote) URL() string {
	return filepath.Join(g.Root, filepath.FromSlash(g.Project))
}

// CreateGerritRemote creates a bare repository for project with a main branch
// and a pending change published under changeRef, one commit ahead of main.
func CreateGerritRemote(t *testing.T, project, changeRef string) *GerritRemote {
	t.Helper()
	dir := t.TempDir()

	// Create a working repo first, then clone it bare.
	work := filepath.Join(dir, "work")
	run(t, dir, "git", "init", "-b", "main", work)
	run(t, work, "git", "config", "user.email", "test@example.com")
	run(t, work, "git", "config", "user.name", "Test")

	writeFile(t, filepath.Join(work, "README.md"), "# test\n")
	run(t, work, "git", "add", ".")
	run(t, work, "git", "commit", "-m", "initial commit")
	mainCommit := Output(t, work, "git", "rev-parse", "HEAD")

	run(t, work, "git", "checkout", "-b", "change")
	writeFile(t, filepath.Join(work, "change.txt"), "change\n")
	run(t, work, "git", "add", ".")
	run(t, work, "git", "commit", "-m", "pending change")
	changeCommit := Output(t, work, "git", "rev-parse", "HEAD")

	// Switch back to main so the bare repo's HEAD points to main.
	run(t, work, "git", "checkout", "main")

	g := &GerritRemote{
		Root:    filepath.Join(dir, "host"),
		Project: project,
		Ref:     changeRef,
		Commit:  changeCommit,
		Main:    mainCommit,
	}
	if err := os.MkdirAll(filepath.Dir(g.URL()), 0755); err != nil {
		t.Fatal(err)
	}
	run(t, dir, "git", "clone", "--bare", work, g.URL())
	run(t, work, "git", "push", g.URL(), "change:"+changeRef)
	return g
}

// CloneInto clones the project's main branch to baseDir/<name> and rewrites
// https://<host>/ to the local Root inside the clone, so fetching
// https://<host>/<project> works offline. Returns the clone path.
func (g *GerritRemote) CloneInto(t *testing.T, baseDir, host string) string {
	t.Helper()
	dest := filepath.Join(baseDir, path.Base(g.Project))
	run(t, baseDir, "git", "clone", g.URL(), dest)
	run(t, dest, "git", "config", "url."+g.Root+"/.insteadOf", "https://"+host+"/")
	return dest
}

// Output runs a command and returns its trimmed stdout.
func Output(t *testing.T, dir string, name string, args ...string) string {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("command %s %v failed: %v", name, args, err)
	}
	return strings.TrimSpace(string(out))
}

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	if err := os.WriteFile(p, []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
}

func run(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v", name, args, err)
	}
}
