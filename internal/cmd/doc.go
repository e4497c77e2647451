// Package cmd provides helpers for executing shell commands with proper error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users. Every
// execution is reported to the context logger so --verbose shows the git
// commands git-side issues on the user's behalf.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, dir, "git", "status"); err != nil {
//	    // err contains stderr output if available
//	    return fmt.Errorf("git failed: %w", err)
//	}
//
//	// For commands that need extra environment or streamed stdout:
//	out, err := cmd.Exec(ctx, cmd.Options{Env: []string{"GIT_INDEX_FILE=/tmp/idx"}}, "git", "ls-files")
//
// # Design Notes
//
// git-side shells out to the git CLI rather than using Go libraries. This
// keeps the shadow repository fully compatible with the user's git setup
// (SSH keys, credential helpers, hooks on the remote side).
package cmd
