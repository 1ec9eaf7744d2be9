// Package git wraps the git invocations gerritfetch performs against a
// project's working copy. Every command runs with an explicit working
// directory and hands back a Status instead of discarding the exit code.
package git
