// Package identity derives the stable project identifier used to key shadow stores.
//
// A project is identified by the root (parentless) commit of its primary
// repository. The id is the same for every clone and does not depend on the
// branch, the checkout path or the configured remotes.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/Solexma/git-side/internal/git"
)

var (
	// ErrNotAProject indicates the directory is not inside a git work tree.
	ErrNotAProject = errors.New("not a git repository")
	// ErrNoInitialCommit indicates the repository has no commit yet.
	ErrNoInitialCommit = errors.New("repository has no commits yet")
)

// ID is a hex-encoded root commit id.
type ID string

// Valid reports whether id looks like a full SHA-1 or SHA-256 object name.
func (id ID) Valid() bool {
	if len(id) != 40 && len(id) != 64 {
		return false
	}
	for _, c := range id {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}

// Short returns the first 12 characters for display.
func (id ID) Short() string {
	if len(id) <= 12 {
		return string(id)
	}
	return string(id[:12])
}

func (id ID) String() string { return string(id) }

// Resolve returns the identity of the project containing workDir.
// When HEAD reaches several root commits the smallest id wins.
func Resolve(ctx context.Context, workDir string) (ID, error) {
	if !git.IsInsideRepo(ctx, workDir) {
		return "", fmt.Errorf("%s: %w", workDir, ErrNotAProject)
	}
	if !git.HasHead(ctx, workDir) {
		return "", fmt.Errorf("%s: %w", workDir, ErrNoInitialCommit)
	}

	roots, err := git.RootCommits(ctx, workDir)
	if err != nil {
		return "", err
	}
	if len(roots) == 0 {
		return "", fmt.Errorf("%s: %w", workDir, ErrNoInitialCommit)
	}

	id := ID(roots[0])
	if !id.Valid() {
		return "", fmt.Errorf("unexpected root commit id %q", roots[0])
	}
	return id, nil
}
