package updater

import (
	"github.com/fbkclanna/gerritfetch/internal/change"
	"github.com/fbkclanna/gerritfetch/internal/git"
	"github.com/fbkclanna/gerritfetch/internal/logging"
	"github.com/fbkclanna/gerritfetch/internal/workspace"
)

// ReasonDirectoryMissing marks an outcome skipped because the working copy does not exist.
const ReasonDirectoryMissing = "directory_missing"

// Outcome describes what Update did to a working copy.
type Outcome struct {
	Project    string      `json:"project" yaml:"project"`
	Dir        string      `json:"dir" yaml:"dir"`
	Skipped    bool        `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Reason     string      `json:"reason,omitempty" yaml:"reason,omitempty"`
	Fetch      *git.Status `json:"fetch,omitempty" yaml:"fetch,omitempty"`
	Checkout   *git.Status `json:"checkout,omitempty" yaml:"checkout,omitempty"`
	HeadBefore string      `json:"head_before,omitempty" yaml:"head_before,omitempty"`
	HeadAfter  string      `json:"head_after,omitempty" yaml:"head_after,omitempty"`
}

// Succeeded reports whether both commands ran and exited 0.
func (o *Outcome) Succeeded() bool {
	return o != nil && !o.Skipped && o.Fetch.OK() && o.Checkout.OK()
}

// Err returns a *CommandError for the first command that did not exit cleanly.
func (o *Outcome) Err() error {
	if o == nil || o.Skipped {
		return nil
	}
	for _, st := range []*git.Status{o.Fetch, o.Checkout} {
		if st != nil && !st.OK() {
			return &CommandError{Status: st}
		}
	}
	return nil
}

// Updater fetches changes into working copies under a base directory.
type Updater struct {
	runner   git.Runner
	log      *logging.Logger
	readHead func(dir string) (git.Head, error)
}

// New creates an Updater that runs git through runner.
func New(runner git.Runner, log *logging.Logger) *Updater {
	if log == nil {
		log = logging.Nop()
	}
	return &Updater{
		runner:   runner,
		log:      log.WithComponent("updater"),
		readHead: git.ReadHead,
	}
}

// Update fetches req.Refspec into <basedir>/<name> and checks out FETCH_HEAD.
//
// A missing working copy is logged and reported as a skipped Outcome with a
// nil error. A project that is not of the form <org>/<name> returns an error
// wrapping workspace.ErrMalformedProject, and a refspec starting with "-"
// returns one wrapping change.ErrInvalidRefspec. Neither runs git. Command
// exit codes are recorded in the Outcome but never turned into an error
// here; see Outcome.Err.
func (u *Updater) Update(basedir string, req change.Request) (*Outcome, error) {
	log := u.log.WithProject(req.Project)

	ctx, err := workspace.Load(basedir)
	if err != nil {
		return nil, err
	}
	dir, err := ctx.ProjectDir(req.Project)
	if err != nil {
		return nil, err
	}
	if err := change.ValidateRefspec(req.Refspec); err != nil {
		return nil, err
	}

	out := &Outcome{Project: req.Project, Dir: dir}

	log.Debug().Str("dir", dir).Msg("resolving working copy")
	if err := workspace.CheckDir(dir); err != nil {
		log.Warn().Err(err).Msgf("Directory not found for %s skipping", req.Project)
		out.Skipped = true
		out.Reason = ReasonDirectoryMissing
		return out, nil
	}

	out.HeadBefore = u.head(log, dir)

	url := git.RemoteURL(req.Host, req.Project)
	log.Debug().Str("dir", dir).Msgf("running git fetch %s %s", url, req.Refspec)
	out.Fetch = git.Fetch(u.runner, dir, url, req.Refspec)
	u.logStatus(log, out.Fetch)

	log.Debug().Str("dir", dir).Msgf("running git checkout %s", git.FetchHead)
	out.Checkout = git.Checkout(u.runner, dir, git.FetchHead)
	u.logStatus(log, out.Checkout)

	out.HeadAfter = u.head(log, dir)
	return out, nil
}

func (u *Updater) head(log *logging.Logger, dir string) string {
	h, err := u.readHead(dir)
	if err != nil {
		log.Debug().Err(err).Msg("could not read HEAD")
		return ""
	}
	return h.String()
}

func (u *Updater) logStatus(log *logging.Logger, st *git.Status) {
	switch {
	case st.DryRun:
		log.Info().Str("command", st.Command()).Msg("dry run, command not executed")
	case st.OK():
		log.Debug().Str("command", st.Command()).Msg("command finished")
	default:
		log.Warn().
			Str("command", st.Command()).
			Int("exit_code", st.ExitCode).
			Str("error", st.Error).
			Msg("command failed")
	}
}
