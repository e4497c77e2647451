package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Solexma/git-side/internal/cmd"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = errors.New("git not found: please install git (https://git-scm.com)")

// CheckGit verifies that git is available in PATH
func CheckGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("%w (%v)", ErrGitNotFound, err)
	}
	return nil
}

// IsInsideRepo reports whether path is inside a git work tree. Bare
// repositories and the .git directory itself do not count.
func IsInsideRepo(ctx context.Context, path string) bool {
	out, err := outputGit(ctx, path, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// inDir prefixes args with -C dir so git resolves the repository from dir.
func inDir(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit runs git in dir and discards stdout.
func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", inDir(dir, args)...)
}

// outputGit runs git in dir and returns stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", inDir(dir, args)...)
}
