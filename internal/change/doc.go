// Package change reads the Gerrit change a CI job was triggered for from the
// GERRIT_* environment variables and decides whether it may be acted on.
//
// Incomplete environments and changes from hosts outside the allow-list are
// not errors: Read returns a skipped Result carrying the reason, so callers
// can no-op without failing the pipeline that invoked them.
package change
