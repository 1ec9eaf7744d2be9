package change

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/fbkclanna/gerritfetch/internal/logging"
)

// Environment variables exported by Gerrit triggers.
const (
	EnvHost    = "GERRIT_HOST"
	EnvProject = "GERRIT_PROJECT"
	EnvRefspec = "GERRIT_REFSPEC"
)

// DefaultAllowedHosts is used when Read is given an empty allow-list.
var DefaultAllowedHosts = []string{"review.gerrithub.io"}

// Request identifies a change to fetch: the review host, the <org>/<name>
// project and the refspec to fetch.
type Request struct {
	Host    string `json:"host" yaml:"host"`
	Project string `json:"project" yaml:"project"`
	Refspec string `json:"refspec" yaml:"refspec"`
}

// Reason says why a change was skipped.
type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonMissingConfiguration Reason = "missing_configuration"
	ReasonDisallowedHost       Reason = "disallowed_host"
	ReasonInvalidRefspec       Reason = "invalid_refspec"
)

// ErrInvalidRefspec indicates a refspec git would parse as a command-line option.
var ErrInvalidRefspec = errors.New("invalid refspec")

// Result is either runnable, carrying a Request, or skipped with a Reason.
type Result struct {
	Request *Request `json:"request,omitempty" yaml:"request,omitempty"`
	Reason  Reason   `json:"reason,omitempty" yaml:"reason,omitempty"`
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Runnable returns a Result that should be acted on.
func Runnable(req Request) Result {
	return Result{Request: &req}
}

// Skipped returns a Result that should not be acted on.
func Skipped(reason Reason, missing ...string) Result {
	return Result{Reason: reason, Missing: missing}
}

// IsRunnable reports whether the result carries a request.
func (r Result) IsRunnable() bool {
	return r.Request != nil
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Read extracts the change from the environment. A variable that is unset or
// empty counts as missing. The host must be an exact member of allowed.
func Read(lookup LookupFunc, allowed []string, log *logging.Logger) Result {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if log == nil {
		log = logging.Nop()
	}
	if len(allowed) == 0 {
		allowed = DefaultAllowedHosts
	}

	host, _ := lookup(EnvHost)
	project, _ := lookup(EnvProject)
	refspec, _ := lookup(EnvRefspec)

	var missing []string
	for _, kv := range [][2]string{{EnvHost, host}, {EnvProject, project}, {EnvRefspec, refspec}} {
		if kv[1] == "" {
			missing = append(missing, kv[0])
		}
	}
	if len(missing) > 0 {
		log.Warn().
			Str("host", host).
			Str("project", project).
			Str("refspec", refspec).
			Strs("missing", missing).
			Msg("GERRIT_HOST, GERRIT_PROJECT and GERRIT_REFSPEC have to be set")
		return Skipped(ReasonMissingConfiguration, missing...)
	}

	if !IsAllowed(host, allowed) {
		log.Warn().Str("host", host).Strs("allowed", allowed).Msg("GERRIT_HOST not allowed")
		return Skipped(ReasonDisallowedHost)
	}

	if err := ValidateRefspec(refspec); err != nil {
		log.Warn().Err(err).Str("refspec", refspec).Msg("GERRIT_REFSPEC rejected")
		return Skipped(ReasonInvalidRefspec)
	}

	return Runnable(Request{Host: host, Project: project, Refspec: refspec})
}

// ValidateRefspec rejects refspecs that start with "-", which git fetch would
// read as an option such as --upload-pack.
func ValidateRefspec(refspec string) error {
	if strings.HasPrefix(refspec, "-") {
		return fmt.Errorf("%w: %q starts with '-'", ErrInvalidRefspec, refspec)
	}
	return nil
}

// IsAllowed reports whether host is in the allow-list.
func IsAllowed(host string, allowed []string) bool {
	return slices.Contains(allowed, host)
}
