// Package workspace resolves where the working copy of a Gerrit project lives.
// Projects are named <org>/<name> and are expected to be checked out at
// <base>/<name>.
package workspace
