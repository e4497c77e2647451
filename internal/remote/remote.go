// Package remote synchronizes a shadow store with its remotes.
//
// Synchronization is last writer wins. Push force-updates the remote branch
// with the local history; pull fetches the remote branch and hard-resets the
// store and the files it tracks onto it. No merge or rebase is ever
// attempted, and commits that exist on only one side are discarded by the
// other side's push or pull.
//
// Every network operation runs non-interactively under a timeout. A
// timeout or a transport failure is reported as ErrRemoteUnreachable; there
// are no retries.
package remote

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/Solexma/git-side/internal/cmd"
	"github.com/Solexma/git-side/internal/log"
	"github.com/Solexma/git-side/internal/shadow"
)

var (
	// ErrNoRemote indicates the alias is not configured in the shadow store.
	ErrNoRemote = errors.New("no remote configured")
	// ErrRemoteUnreachable indicates a network operation timed out or the
	// transport failed.
	ErrRemoteUnreachable = errors.New("remote unreachable")
	// ErrNoRemoteBranch indicates the remote does not have the branch.
	ErrNoRemoteBranch = errors.New("remote branch not found")
)

// DefaultTimeout bounds a network operation when no timeout is given.
const DefaultTimeout = 60 * time.Second

// nonInteractive keeps git and credential helpers from prompting.
var nonInteractive = []string{
	"GIT_TERMINAL_PROMPT=0",
	"GCM_INTERACTIVE=never",
	"GIT_ASKPASS=",
	"SSH_ASKPASS=",
}

// Remote is a configured remote of the shadow store.
type Remote struct {
	Name string
	URL  string
}

// Push force-pushes HEAD to branch on alias and sets it as upstream.
func Push(ctx context.Context, repo *shadow.Repo, alias, branch string, timeout time.Duration) error {
	if err := requireRemote(ctx, repo, alias); err != nil {
		return err
	}
	if !repo.HasHead(ctx) {
		return shadow.ErrNoCommits
	}

	refspec := "HEAD:refs/heads/" + branch
	if err := network(ctx, repo, alias, timeout, "push", "--force", "--set-upstream", alias, refspec); err != nil {
		return err
	}
	log.FromContext(ctx).Debug("pushed", "remote", alias, "branch", branch)
	return nil
}

// Pull fetches branch from alias and hard-resets the store onto it.
// Local commits that were not pushed are discarded.
func Pull(ctx context.Context, repo *shadow.Repo, alias, branch string, timeout time.Duration) error {
	if err := requireRemote(ctx, repo, alias); err != nil {
		return err
	}

	tracking := "refs/remotes/" + alias + "/" + branch
	refspec := "+refs/heads/" + branch + ":" + tracking
	if err := network(ctx, repo, alias, timeout, "fetch", "--no-tags", alias, refspec); err != nil {
		if strings.Contains(err.Error(), "couldn't find remote ref") {
			return fmt.Errorf("%w: %s/%s", ErrNoRemoteBranch, alias, branch)
		}
		return err
	}

	if _, err := repo.Exec(ctx, cmd.Options{}, "reset", "--hard", "--quiet", tracking); err != nil {
		return fmt.Errorf("reset to %s/%s: %w", alias, branch, err)
	}
	log.FromContext(ctx).Debug("pulled", "remote", alias, "branch", branch)
	return nil
}

// network runs a git network command under timeout without prompting.
func network(ctx context.Context, repo *shadow.Repo, alias string, timeout time.Duration, args ...string) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := repo.Exec(ctx, cmd.Options{Env: nonInteractive}, args...)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: no response within %s", ErrRemoteUnreachable, alias, timeout)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if strings.Contains(err.Error(), "couldn't find remote ref") {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrRemoteUnreachable, alias, err)
}

func requireRemote(ctx context.Context, repo *shadow.Repo, alias string) error {
	remotes, err := repo.Remotes(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(remotes, alias) {
		return fmt.Errorf("%w: %q (add one with: git side remote add %s <url>)", ErrNoRemote, alias, alias)
	}
	return nil
}

// List returns the configured remotes with their fetch URLs.
func List(ctx context.Context, repo *shadow.Repo) ([]Remote, error) {
	out, err := repo.Exec(ctx, cmd.Options{}, "remote", "-v")
	if err != nil {
		return nil, err
	}
	return parseRemotes(out), nil
}

// parseRemotes decodes "git remote -v" output, keeping fetch URLs.
func parseRemotes(out []byte) []Remote {
	var remotes []Remote
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		if len(fields) >= 3 && fields[2] != "(fetch)" {
			continue
		}
		remotes = append(remotes, Remote{Name: fields[0], URL: fields[1]})
	}
	return remotes
}

// Add configures a new remote.
func Add(ctx context.Context, repo *shadow.Repo, name, url string) error {
	_, err := repo.Exec(ctx, cmd.Options{}, "remote", "add", name, url)
	return err
}

// Remove deletes a remote.
func Remove(ctx context.Context, repo *shadow.Repo, name string) error {
	if err := requireRemote(ctx, repo, name); err != nil {
		return err
	}
	_, err := repo.Exec(ctx, cmd.Options{}, "remote", "remove", name)
	return err
}

// Passthrough runs "git remote <args>" against the store, streaming its
// output to w.
func Passthrough(ctx context.Context, repo *shadow.Repo, w io.Writer, args ...string) error {
	_, err := repo.Exec(ctx, cmd.Options{Stdout: w}, append([]string{"remote"}, args...)...)
	return err
}
