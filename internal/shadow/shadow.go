package shadow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Solexma/git-side/internal/identity"
	"github.com/Solexma/git-side/internal/log"
)

var (
	// ErrStoreCreationFailed indicates the bare store could not be initialized.
	ErrStoreCreationFailed = errors.New("failed to create shadow store")
	// ErrNothingToCommit indicates the staged tree equals HEAD.
	ErrNothingToCommit = errors.New("nothing to commit")
	// ErrNoCommits indicates the shadow store has no commits yet.
	ErrNoCommits = errors.New("shadow store has no commits yet")
)

// trackedFileName is the tracked-set file kept inside the store.
const trackedFileName = "side-tracked"

// Repo is a shadow store bound to a work tree.
type Repo struct {
	id       identity.ID
	dir      string
	workTree string
	index    string // alternate index file; empty means the store's own
}

// Open binds the store for id under base to workTree.
// It does not touch the filesystem.
func Open(id identity.ID, base, workTree string) *Repo {
	return &Repo{
		id:       id,
		dir:      filepath.Join(base, string(id)),
		workTree: workTree,
	}
}

// ID returns the project identity.
func (r *Repo) ID() identity.ID { return r.id }

// Dir returns the store directory.
func (r *Repo) Dir() string { return r.dir }

// WorkTree returns the bound work tree.
func (r *Repo) WorkTree() string { return r.workTree }

// IndexFile returns the index file git commands run against.
func (r *Repo) IndexFile() string {
	if r.index != "" {
		return r.index
	}
	return filepath.Join(r.dir, "index")
}

// TrackedFile returns the path of the tracked-set file inside the store.
func (r *Repo) TrackedFile() string {
	return filepath.Join(r.dir, trackedFileName)
}

// WithIndex returns a copy of r that reads and writes indexFile instead of
// the store's index.
func (r *Repo) WithIndex(indexFile string) *Repo {
	c := *r
	c.index = indexFile
	return &c
}

// Exists reports whether the store has been initialized.
func (r *Repo) Exists() bool {
	info, err := os.Stat(filepath.Join(r.dir, "HEAD"))
	return err == nil && !info.IsDir()
}

// EnsureCreated initializes the bare store with branch as its initial
// branch if it does not exist yet. Reports whether it was created.
func (r *Repo) EnsureCreated(ctx context.Context, branch string) (bool, error) {
	if r.Exists() {
		return false, nil
	}

	l := log.FromContext(ctx)
	l.Debug("creating shadow store", "dir", r.dir, "branch", branch)

	_, statErr := os.Stat(r.dir)
	preexisting := statErr == nil

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrStoreCreationFailed, r.dir, err)
	}

	fail := func(err error) (bool, error) {
		if !preexisting {
			os.RemoveAll(r.dir)
		}
		return false, fmt.Errorf("%w: %s: %v", ErrStoreCreationFailed, r.dir, err)
	}

	if err := r.runBare(ctx, "init", "--quiet", "--bare", "--initial-branch="+branch); err != nil {
		return fail(err)
	}
	for _, kv := range [][2]string{
		{"status.showUntrackedFiles", "no"},
		{"core.logAllRefUpdates", "true"},
	} {
		if err := r.runBare(ctx, "config", kv[0], kv[1]); err != nil {
			return fail(err)
		}
	}

	return true, nil
}
