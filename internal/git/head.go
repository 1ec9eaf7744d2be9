package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
)

// Head describes what a working copy currently has checked out.
type Head struct {
	Commit string // short hash
	Branch string // empty when HEAD is detached
}

func (h Head) String() string {
	if h.Branch == "" {
		return "(detached) @ " + h.Commit
	}
	return h.Branch + " @ " + h.Commit
}

// ReadHead resolves HEAD of the repository at repoDir without shelling out.
func ReadHead(repoDir string) (Head, error) {
	repo, err := gogit.PlainOpen(repoDir)
	if err != nil {
		return Head{}, fmt.Errorf("opening %s: %w", repoDir, err)
	}
	ref, err := repo.Head()
	if err != nil {
		return Head{}, fmt.Errorf("resolving HEAD in %s: %w", repoDir, err)
	}

	h := Head{Commit: ref.Hash().String()[:7]}
	if ref.Name().IsBranch() {
		h.Branch = ref.Name().Short()
	}
	return h, nil
}
