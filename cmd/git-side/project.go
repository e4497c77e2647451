package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Solexma/git-side/internal/config"
	"github.com/Solexma/git-side/internal/git"
	"github.com/Solexma/git-side/internal/identity"
	"github.com/Solexma/git-side/internal/log"
	"github.com/Solexma/git-side/internal/registry"
	"github.com/Solexma/git-side/internal/shadow"
	"github.com/Solexma/git-side/internal/syncer"
	"github.com/Solexma/git-side/internal/tracked"
	"github.com/Solexma/git-side/internal/ui/styles"
)

// project is the primary repository the command runs in, bound to its
// shadow store.
type project struct {
	cfg     *config.Config
	workDir string // invocation directory
	root    string // primary work tree
	id      identity.ID
	repo    *shadow.Repo
}

// configFromContext returns the loaded config, or defaults when none is set.
func configFromContext(ctx context.Context) *config.Config {
	if cfg := config.FromContext(ctx); cfg != nil {
		return cfg
	}
	cfg := config.Default()
	return &cfg
}

// identifyProject resolves the primary repository around the working
// directory without touching the location registry.
func identifyProject(ctx context.Context) (*project, error) {
	p := &project{
		cfg:     configFromContext(ctx),
		workDir: config.WorkDirFromContext(ctx),
	}

	id, err := identity.Resolve(ctx, p.workDir)
	if err != nil {
		return nil, err
	}
	root, err := git.RepoRoot(ctx, p.workDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", identity.ErrNotAProject, err)
	}
	p.id = id
	p.root = root
	return p, nil
}

// openProject resolves the project and binds it to its shadow store. The
// store location is looked up in the registry; a missing entry is recorded
// with the configured base path. The store itself is not created.
func openProject(ctx context.Context) (*project, error) {
	p, err := identifyProject(ctx)
	if err != nil {
		return nil, err
	}

	base, err := registry.Resolve(p.cfg.RegistryPath, p.id, p.cfg.BasePath)
	if err != nil {
		return nil, err
	}
	p.repo = shadow.Open(p.id, base, p.root)
	log.FromContext(ctx).Debug("project", "id", p.id.Short(), "worktree", p.root, "store", p.repo.Dir())
	return p, nil
}

// ensureStore creates the shadow store on first use.
func (p *project) ensureStore(ctx context.Context) error {
	_, err := p.repo.EnsureCreated(ctx, p.cfg.Branch)
	return err
}

func (p *project) loadTracked() (*tracked.Set, error) {
	return tracked.Load(p.repo.TrackedFile())
}

// sync stages the tracked roots into the shadow index.
// sync stages set into the store. untracked names roots just removed from
// set whose indexed content is staged for deletion.
func (p *project) sync(ctx context.Context, set *tracked.Set, untracked ...string) (syncer.Delta, error) {
	return syncer.Sync(ctx, p.repo, set, syncer.Options{
		RenameThreshold: p.cfg.RenameThreshold,
		Untracked:       untracked,
	})
}

// writeDelta prints one line per entry of d, rename pairs first.
func writeDelta(w io.Writer, d syncer.Delta) {
	for _, r := range d.Renamed {
		fmt.Fprintf(w, "  %s %s -> %s\n", styles.ChangeSymbol('R'), r.From, r.To)
	}
	for _, p := range d.Added {
		fmt.Fprintf(w, "  %s %s\n", styles.ChangeSymbol('A'), p)
	}
	for _, p := range d.Modified {
		fmt.Fprintf(w, "  %s %s\n", styles.ChangeSymbol('M'), p)
	}
	for _, p := range d.Deleted {
		fmt.Fprintf(w, "  %s %s\n", styles.ChangeSymbol('D'), p)
	}
}

// writeChanges prints staged changes as reported by the store.
func writeChanges(w io.Writer, changes []shadow.Change) {
	for _, c := range changes {
		if c.Status == 'R' {
			fmt.Fprintf(w, "  %s %s -> %s\n", styles.ChangeSymbol(c.Status), c.From, c.Path)
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", styles.ChangeSymbol(c.Status), c.Path)
	}
}

// firstLine returns the subject line of a commit message.
func firstLine(msg string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(msg), "\n")
	return line
}
