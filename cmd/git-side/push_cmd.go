package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Solexma/git-side/internal/log"
	"github.com/Solexma/git-side/internal/output"
	"github.com/Solexma/git-side/internal/remote"
	"github.com/Solexma/git-side/internal/ui/progress"
	"github.com/Solexma/git-side/internal/ui/styles"
)

func newPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "push [remote]",
		Short:   "Force-push the side repo to a remote",
		GroupID: GroupRemote,
		Args:    cobra.MaximumNArgs(1),
		Long: `Force-push the side repo to a remote.

The side repo's current branch overwrites the branch of the same name on
the remote: the last writer wins. The push never prompts for credentials and gives up after the
configured network_timeout.`,
		Example: `  git side push          # Push to the configured remote (origin)
  git side push backup   # Push to another remote`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			p, err := openProject(ctx)
			if err != nil {
				return err
			}
			if err := p.ensureStore(ctx); err != nil {
				return err
			}

			alias := remoteAlias(p, args)
			branch, err := p.repo.CurrentBranch(ctx)
			if err != nil {
				return err
			}
			err = withSpinner(ctx, fmt.Sprintf("Pushing to %s...", alias), func() error {
				return remote.Push(ctx, p.repo, alias, branch, p.cfg.NetworkTimeout)
			})
			if err != nil {
				return err
			}
			out.Println(styles.Done(fmt.Sprintf("Pushed to %s/%s.", alias, branch)))
			return nil
		},
	}

	return cmd
}

func newPullCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pull [remote]",
		Short:   "Replace the side repo with the remote history",
		GroupID: GroupRemote,
		Args:    cobra.MaximumNArgs(1),
		Long: `Replace the side repo with the remote history.

The remote branch matching the side repo's current branch is fetched and
the side repo is hard-reset onto it. Local side commits that were never
pushed are discarded. Files the side repo records are overwritten on disk,
and files it recorded locally but the remote no longer has are deleted from
disk. The pull never prompts for credentials and gives up after
the configured network_timeout.`,
		Example: `  git side pull          # Pull from the configured remote (origin)
  git side pull backup   # Pull from another remote`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			p, err := openProject(ctx)
			if err != nil {
				return err
			}
			if err := p.ensureStore(ctx); err != nil {
				return err
			}

			alias := remoteAlias(p, args)
			branch, err := p.repo.CurrentBranch(ctx)
			if err != nil {
				return err
			}
			err = withSpinner(ctx, fmt.Sprintf("Pulling from %s...", alias), func() error {
				return remote.Pull(ctx, p.repo, alias, branch, p.cfg.NetworkTimeout)
			})
			if err != nil {
				return err
			}
			out.Println(styles.Done(fmt.Sprintf("Pulled from %s/%s.", alias, branch)))
			return nil
		},
	}

	return cmd
}

// withSpinner runs fn while a spinner animates on stderr. The spinner is
// skipped when stderr is not a terminal or logging is quiet or verbose.
func withSpinner(ctx context.Context, message string, fn func() error) error {
	l := log.FromContext(ctx)
	fd := os.Stderr.Fd()
	if l.IsQuiet() || l.IsVerbose() || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		return fn()
	}

	sp := progress.NewSpinner(os.Stderr, message)
	sp.Start()
	defer sp.Stop()
	return fn()
}

// remoteAlias returns the remote named on the command line or the
// configured default.
func remoteAlias(p *project, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return p.cfg.Remote
}
