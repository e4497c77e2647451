// Package git provides read-only queries against the primary repository.
//
// All operations use [os/exec.Command] to call the git CLI directly rather than
// using Go git libraries, so user configuration (safe.directory, includes,
// worktree layouts) is honored exactly as git itself sees it.
//
// Nothing in this package writes to the primary repository. The shadow
// store has its own runner in the shadow package.
//
//   - [CheckGit]: git is on PATH
//   - [IsInsideRepo], [RepoRoot]: locate the work tree
//   - [CommonDir]: the directory holding local hooks
//   - [HasHead], [RootCommits]: inputs to project identity
//   - [LastCommitMessage], [ShortCommitHash]: used by hook-driven commits
package git
