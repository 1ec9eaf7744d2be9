// Package updater applies a Gerrit change to the project's existing working
// copy: git fetch of the change refspec followed by git checkout FETCH_HEAD.
package updater
