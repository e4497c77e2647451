// Package hooks installs git-side triggers into the primary repository.
//
// A hook is a small shell script in <git common dir>/hooks/<event> that runs
// the configured command (by default "git side auto") after the primary
// repository commits, merges or before it pushes. The hooks directory is
// local to the clone and never replicated.
//
// # Events
//
//   - post-commit (default)
//   - pre-push
//   - post-merge
//
// # Ownership
//
// Scripts written by git-side carry a marker line. Installing always
// writes a fresh script; if the slot held a script without the marker it
// is replaced and the caller is told through [Result.Replaced]. Uninstall
// only removes scripts carrying the marker.
//
// Existing hooks are not chained: a slot holds either a git-side script or
// someone else's.
//
// core.hooksPath is not consulted.
package hooks
