package git

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// RepoRoot returns the top-level directory of the work tree containing dir.
func RepoRoot(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}
	root := strings.TrimSpace(string(output))
	if root == "" {
		return "", fmt.Errorf("not in a git repository: %s has no work tree", dir)
	}
	return filepath.Clean(root), nil
}

// CommonDir returns the absolute path of the repository's common git
// directory. For linked worktrees this is the main repository's .git.
func CommonDir(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", fmt.Errorf("failed to get git common dir: %w", err)
	}
	common := strings.TrimSpace(string(output))
	if !filepath.IsAbs(common) {
		base := dir
		if base == "" {
			base = "."
		}
		abs, err := filepath.Abs(filepath.Join(base, common))
		if err != nil {
			return "", err
		}
		common = abs
	}
	return filepath.Clean(common), nil
}

// HasHead reports whether HEAD resolves to a commit.
func HasHead(ctx context.Context, dir string) bool {
	return runGit(ctx, dir, "rev-parse", "--verify", "--quiet", "HEAD^{commit}") == nil
}

// RootCommits returns the parentless commits reachable from HEAD, sorted.
func RootCommits(ctx context.Context, dir string) ([]string, error) {
	output, err := outputGit(ctx, dir, "rev-list", "--max-parents=0", "HEAD")
	if err != nil {
		return nil, fmt.Errorf("failed to list root commits: %w", err)
	}
	roots := strings.Fields(string(output))
	slices.Sort(roots)
	return roots, nil
}

// LastCommitMessage returns the full message of the HEAD commit.
func LastCommitMessage(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "log", "-1", "--format=%B", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to read last commit message: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// ShortCommitHash returns the abbreviated hash of HEAD.
func ShortCommitHash(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get commit hash: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
