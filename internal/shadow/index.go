package shadow

import (
	"bytes"
	"context"
	"strings"

	"github.com/Solexma/git-side/internal/cmd"
)

// ListIndex returns every path recorded in the index, relative to the work
// tree root.
func (r *Repo) ListIndex(ctx context.Context) ([]string, error) {
	out, err := r.output(ctx, "ls-files", "-z", "--cached", "--full-name")
	if err != nil {
		return nil, err
	}
	return splitNUL(out), nil
}

// StageForced adds paths to the index regardless of ignore rules.
func (r *Repo) StageForced(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	_, err := r.Exec(ctx, cmd.Options{Stdin: joinNUL(paths)},
		"add", "--force", "--pathspec-from-file=-", "--pathspec-file-nul")
	return err
}

// StageRemoval removes paths from the index, leaving the files on disk.
func (r *Repo) StageRemoval(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	_, err := r.Exec(ctx, cmd.Options{Stdin: joinNUL(paths)},
		"rm", "--cached", "--quiet", "--ignore-unmatch", "--pathspec-from-file=-", "--pathspec-file-nul")
	return err
}

// ChangedPaths refreshes the index stat info and returns indexed paths
// whose work tree content differs, including ones missing on disk.
func (r *Repo) ChangedPaths(ctx context.Context) ([]string, error) {
	// Exit status 1 only means some entries need updating.
	if err := r.run(ctx, "update-index", "-q", "--ignore-submodules", "--refresh"); err != nil {
		if ctx.Err() != nil || cmd.ExitCode(err) != 1 {
			return nil, err
		}
	}
	out, err := r.output(ctx, "diff-files", "--name-only", "-z")
	if err != nil {
		return nil, err
	}
	return splitNUL(out), nil
}

func splitNUL(out []byte) []string {
	var paths []string
	for p := range bytes.SplitSeq(out, []byte{0}) {
		if len(p) > 0 {
			paths = append(paths, string(p))
		}
	}
	return paths
}

func joinNUL(paths []string) *strings.Reader {
	return strings.NewReader(strings.Join(paths, "\x00") + "\x00")
}
