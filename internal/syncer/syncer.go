package syncer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Solexma/git-side/internal/log"
	"github.com/Solexma/git-side/internal/shadow"
	"github.com/Solexma/git-side/internal/tracked"
)

var (
	// ErrSyncAborted indicates the sync stopped before staging anything.
	ErrSyncAborted = errors.New("sync aborted")
	// ErrIndexLocked indicates another git process holds the shadow index lock.
	ErrIndexLocked = errors.New("shadow index is locked by another git process")
)

// DefaultRenameThreshold is the similarity percentage used when none is set.
const DefaultRenameThreshold = 50

// Options tune a sync.
type Options struct {
	// RenameThreshold is the similarity percentage at which a deleted and an
	// added file are reported as a rename. Zero uses DefaultRenameThreshold;
	// a negative value disables rename detection.
	RenameThreshold int

	// Untracked lists roots just removed from the set. Indexed paths under
	// them are staged as deleted whether or not they exist on disk.
	Untracked []string
}

func (o Options) threshold() int {
	switch {
	case o.RenameThreshold == 0:
		return DefaultRenameThreshold
	case o.RenameThreshold < 0:
		return 0
	default:
		return o.RenameThreshold
	}
}

// Plan computes the delta a sync would stage without touching the index
// contents. Renames are not paired. Indexed paths outside the tracked roots
// are left alone.
func Plan(ctx context.Context, repo *shadow.Repo, set *tracked.Set) (Delta, error) {
	return plan(ctx, repo, set, nil)
}

func plan(ctx context.Context, repo *shadow.Repo, set *tracked.Set, untracked []string) (Delta, error) {
	onDisk, err := expandRoots(repo.WorkTree(), set.Paths())
	if err != nil {
		return Delta{}, err
	}

	indexed, err := repo.ListIndex(ctx)
	if err != nil {
		return Delta{}, fmt.Errorf("%w: list shadow index: %v", ErrSyncAborted, err)
	}

	changed, err := repo.ChangedPaths(ctx)
	if err != nil {
		return Delta{}, fmt.Errorf("%w: compare shadow index: %v", ErrSyncAborted, err)
	}

	inScope, dropped := scope(indexed, set, untracked)
	d := diff(onDisk, inScope, changed)
	if len(dropped) > 0 {
		d.Deleted = append(d.Deleted, dropped...)
		slices.Sort(d.Deleted)
	}
	return d, nil
}

// scope splits indexed paths into those under a tracked root and those
// under one of the untracked roots. Anything else is not ours to touch.
func scope(indexed []string, set *tracked.Set, untracked []string) (inScope, dropped []string) {
	for _, p := range indexed {
		switch {
		case set.Covers(p):
			inScope = append(inScope, p)
		case slices.ContainsFunc(untracked, func(root string) bool { return within(p, root) }):
			dropped = append(dropped, p)
		}
	}
	return inScope, dropped
}

func within(p, root string) bool {
	return root == "." || p == root || strings.HasPrefix(p, root+"/")
}

// diff classifies paths into added, modified and deleted.
func diff(onDisk map[string]struct{}, indexed, changed []string) Delta {
	var d Delta

	inIndex := make(map[string]struct{}, len(indexed))
	for _, p := range indexed {
		inIndex[p] = struct{}{}
		if _, ok := onDisk[p]; !ok {
			d.Deleted = append(d.Deleted, p)
		}
	}
	for p := range onDisk {
		if _, ok := inIndex[p]; !ok {
			d.Added = append(d.Added, p)
		}
	}
	for _, p := range changed {
		_, disk := onDisk[p]
		_, index := inIndex[p]
		if disk && index {
			d.Modified = append(d.Modified, p)
		}
	}

	slices.Sort(d.Added)
	slices.Sort(d.Deleted)
	slices.Sort(d.Modified)
	d.Modified = slices.Compact(d.Modified)
	return d
}

// Sync stages the delta between the tracked roots on disk and the shadow
// index. Either the whole delta is staged or, on error, nothing is.
func Sync(ctx context.Context, repo *shadow.Repo, set *tracked.Set, opts Options) (Delta, error) {
	l := log.FromContext(ctx)

	d, err := plan(ctx, repo, set, opts.Untracked)
	if err != nil {
		return Delta{}, err
	}
	if d.Empty() {
		l.Debug("sync: nothing to stage", "roots", set.Len())
		return d, nil
	}

	if err := stage(ctx, repo, d); err != nil {
		return Delta{}, err
	}
	l.Debug("sync: staged", "added", len(d.Added), "modified", len(d.Modified), "deleted", len(d.Deleted))

	if t := opts.threshold(); t > 0 && len(d.Added) > 0 && len(d.Deleted) > 0 {
		d, err = pairRenames(ctx, repo, d, t)
		if err != nil {
			// The delta is staged either way.
			l.Debug("sync: rename detection failed", "err", err)
		}
	}
	return d, nil
}

// stage applies d to a copy of the index and moves the copy into place.
// The index lock is held from the copy until the replacement so a
// concurrent git process can neither interleave nor be overwritten.
func stage(ctx context.Context, repo *shadow.Repo, d Delta) error {
	index := repo.IndexFile()

	unlock, err := lockIndex(index)
	if err != nil {
		return err
	}
	defer unlock()

	tmp, err := os.CreateTemp(filepath.Dir(index), "index.sync-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyncAborted, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	copied, err := copyIndex(index, tmp)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("%w: copy shadow index: %v", ErrSyncAborted, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrSyncAborted, err)
	}
	if !copied {
		// git rejects a zero-length index but creates a missing one.
		os.Remove(tmpPath)
	}

	work := repo.WithIndex(tmpPath)
	if err := work.StageForced(ctx, append(slices.Clone(d.Added), d.Modified...)); err != nil {
		return fmt.Errorf("%w: stage files: %v", ErrSyncAborted, err)
	}
	if err := work.StageRemoval(ctx, d.Deleted); err != nil {
		return fmt.Errorf("%w: stage deletions: %v", ErrSyncAborted, err)
	}

	if err := os.Rename(tmpPath, index); err != nil {
		return fmt.Errorf("%w: replace shadow index: %v", ErrSyncAborted, err)
	}
	return nil
}

// lockIndex takes git's lock on index by exclusively creating index.lock.
// The returned func releases it.
func lockIndex(index string) (func(), error) {
	lockPath := index + ".lock"
	f, err := os.OpenFile(lockPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o666)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: %w: %s", ErrSyncAborted, ErrIndexLocked, lockPath)
		}
		return nil, fmt.Errorf("%w: lock shadow index: %v", ErrSyncAborted, err)
	}
	f.Close()
	return func() { os.Remove(lockPath) }, nil
}

// copyIndex copies the index into dst. Reports false when there is no
// index yet.
func copyIndex(index string, dst io.Writer) (bool, error) {
	src, err := os.Open(index)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer src.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return false, err
	}
	return true, nil
}

// pairRenames moves deleted/added pairs that git detects as renames into
// d.Renamed.
func pairRenames(ctx context.Context, repo *shadow.Repo, d Delta, threshold int) (Delta, error) {
	changes, err := repo.Status(ctx, threshold)
	if err != nil {
		return d, err
	}

	deleted := make(map[string]bool, len(d.Deleted))
	for _, p := range d.Deleted {
		deleted[p] = true
	}
	added := make(map[string]bool, len(d.Added))
	for _, p := range d.Added {
		added[p] = true
	}

	for _, c := range changes {
		if c.Status != 'R' || !deleted[c.From] || !added[c.Path] {
			continue
		}
		d.Renamed = append(d.Renamed, Rename{From: c.From, To: c.Path})
		delete(deleted, c.From)
		delete(added, c.Path)
	}
	if len(d.Renamed) == 0 {
		return d, nil
	}

	d.Deleted = slices.DeleteFunc(d.Deleted, func(p string) bool { return !deleted[p] })
	d.Added = slices.DeleteFunc(d.Added, func(p string) bool { return !added[p] })
	return d, nil
}
