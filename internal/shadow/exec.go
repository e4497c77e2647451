package shadow

import (
	"context"

	"github.com/Solexma/git-side/internal/cmd"
)

// locationEnv are variables that would redirect git to another repository.
// Git exports several of them to hook processes.
var locationEnv = []string{
	"GIT_DIR",
	"GIT_WORK_TREE",
	"GIT_INDEX_FILE",
	"GIT_OBJECT_DIRECTORY",
	"GIT_ALTERNATE_OBJECT_DIRECTORIES",
	"GIT_COMMON_DIR",
	"GIT_PREFIX",
	"GIT_NAMESPACE",
	"GIT_LITERAL_PATHSPECS",
	"GIT_GLOB_PATHSPECS",
	"GIT_NOGLOB_PATHSPECS",
	"GIT_ICASE_PATHSPECS",
}

// Exec runs git against the store and work tree. opts.Env entries are
// added after the store's own environment.
func (r *Repo) Exec(ctx context.Context, opts cmd.Options, args ...string) ([]byte, error) {
	if opts.Dir == "" {
		opts.Dir = r.workTree
	}
	opts.Unset = append(opts.Unset, locationEnv...)
	env := []string{
		"GIT_LITERAL_PATHSPECS=1",
		"GIT_INDEX_FILE=" + r.IndexFile(),
	}
	opts.Env = append(env, opts.Env...)

	full := append([]string{"--git-dir=" + r.dir, "--work-tree=" + r.workTree}, args...)
	return cmd.Exec(ctx, opts, "git", full...)
}

// run executes a git command, discarding stdout.
func (r *Repo) run(ctx context.Context, args ...string) error {
	_, err := r.Exec(ctx, cmd.Options{}, args...)
	return err
}

// output executes a git command and returns stdout.
func (r *Repo) output(ctx context.Context, args ...string) ([]byte, error) {
	return r.Exec(ctx, cmd.Options{}, args...)
}

// runBare executes a git command against the store without a work tree.
func (r *Repo) runBare(ctx context.Context, args ...string) error {
	opts := cmd.Options{
		Dir:   r.dir,
		Unset: locationEnv,
		Env:   []string{"GIT_LITERAL_PATHSPECS=1"},
	}
	_, err := cmd.Exec(ctx, opts, "git", append([]string{"--git-dir=" + r.dir}, args...)...)
	return err
}
