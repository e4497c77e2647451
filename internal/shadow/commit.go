package shadow

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Solexma/git-side/internal/cmd"
)

// Change is one entry of a staged diff.
type Change struct {
	Status byte   // 'A', 'M', 'D', 'R', 'T'
	Path   string // new path
	From   string // old path, set for renames
}

func (c Change) String() string {
	if c.Status == 'R' {
		return fmt.Sprintf("R %s -> %s", c.From, c.Path)
	}
	return fmt.Sprintf("%c %s", c.Status, c.Path)
}

// HasHead reports whether the store has at least one commit.
func (r *Repo) HasHead(ctx context.Context) bool {
	return r.run(ctx, "rev-parse", "--verify", "--quiet", "HEAD^{commit}") == nil
}

// baseTree returns HEAD, or the empty tree when there are no commits.
func (r *Repo) baseTree(ctx context.Context) (string, error) {
	if r.HasHead(ctx) {
		return "HEAD", nil
	}
	out, err := r.Exec(ctx, cmd.Options{Stdin: strings.NewReader("")}, "hash-object", "-t", "tree", "--stdin")
	if err != nil {
		return "", fmt.Errorf("hash empty tree: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// HasStagedChanges reports whether the index differs from HEAD.
func (r *Repo) HasStagedChanges(ctx context.Context) (bool, error) {
	base, err := r.baseTree(ctx)
	if err != nil {
		return false, err
	}
	err = r.run(ctx, "diff-index", "--cached", "--quiet", base, "--")
	if err == nil {
		return false, nil
	}
	if ctx.Err() == nil && cmd.ExitCode(err) == 1 {
		return true, nil
	}
	return false, err
}

// Status returns the staged changes relative to HEAD. A positive
// renameThreshold pairs deletions and additions whose similarity reaches
// that percentage; zero disables rename detection.
func (r *Repo) Status(ctx context.Context, renameThreshold int) ([]Change, error) {
	base, err := r.baseTree(ctx)
	if err != nil {
		return nil, err
	}

	args := []string{"diff-index", "--cached", "--name-status", "-z"}
	if renameThreshold > 0 {
		args = append(args, fmt.Sprintf("-M%d%%", renameThreshold))
	} else {
		args = append(args, "--no-renames")
	}
	args = append(args, base, "--")

	out, err := r.output(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parseNameStatus(splitNUL(out))
}

// parseNameStatus decodes "diff --name-status -z" fields. Rename entries
// carry a score ("R087") followed by the old and new path.
func parseNameStatus(fields []string) ([]Change, error) {
	var changes []Change
	for i := 0; i < len(fields); {
		status := fields[i]
		if status == "" {
			return nil, fmt.Errorf("malformed diff output")
		}
		if status[0] == 'R' {
			if i+2 >= len(fields) {
				return nil, fmt.Errorf("malformed diff output near %q", status)
			}
			changes = append(changes, Change{Status: 'R', From: fields[i+1], Path: fields[i+2]})
			i += 3
			continue
		}
		if i+1 >= len(fields) {
			return nil, fmt.Errorf("malformed diff output near %q", status)
		}
		changes = append(changes, Change{Status: status[0], Path: fields[i+1]})
		i += 2
	}
	return changes, nil
}

// Commit records the staged tree with message and returns the short hash.
// Returns ErrNothingToCommit when the index equals HEAD.
func (r *Repo) Commit(ctx context.Context, message string) (string, error) {
	staged, err := r.HasStagedChanges(ctx)
	if err != nil {
		return "", err
	}
	if !staged {
		return "", ErrNothingToCommit
	}

	opts := cmd.Options{Stdin: strings.NewReader(message)}
	if _, err := r.Exec(ctx, opts, "commit", "--quiet", "--no-verify", "--cleanup=strip", "--file=-"); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	out, err := r.output(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Log streams "git log" of the store to w. Extra args are passed through.
func (r *Repo) Log(ctx context.Context, w io.Writer, args ...string) error {
	if !r.HasHead(ctx) {
		return ErrNoCommits
	}
	_, err := r.Exec(ctx, cmd.Options{Stdout: w}, append([]string{"log"}, args...)...)
	return err
}

// CurrentBranch returns the branch HEAD points to.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.output(ctx, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get shadow branch: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Remotes returns the configured remote aliases.
func (r *Repo) Remotes(ctx context.Context) ([]string, error) {
	out, err := r.output(ctx, "remote")
	if err != nil {
		return nil, err
	}
	return strings.Fields(string(out)), nil
}

// RemoteURL returns the fetch URL of alias.
func (r *Repo) RemoteURL(ctx context.Context, alias string) (string, error) {
	out, err := r.output(ctx, "remote", "get-url", alias)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
