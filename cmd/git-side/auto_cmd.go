package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Solexma/git-side/internal/git"
	"github.com/Solexma/git-side/internal/log"
	"github.com/Solexma/git-side/internal/output"
	"github.com/Solexma/git-side/internal/shadow"
)

func newAutoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "auto",
		Short:   "Sync and commit using the last primary commit message",
		GroupID: GroupAuto,
		Args:    cobra.NoArgs,
		Long: `Sync and commit using the last commit message of the primary repository.

This is what the installed hook runs. When nothing changed it reports so and
exits successfully.`,
		Example: `  git side auto   # Typically run from a post-commit hook`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if event := os.Getenv("GIT_SIDE_HOOK"); event != "" {
				l.Debug("auto", "hook", event)
			}

			p, err := openProject(ctx)
			if err != nil {
				return err
			}
			set, err := p.loadTracked()
			if err != nil {
				return err
			}
			if set.Len() == 0 {
				return fmt.Errorf("no paths tracked, run 'git side add <path>' first")
			}

			message, err := git.LastCommitMessage(ctx, p.root)
			if err != nil {
				return err
			}

			if err := p.ensureStore(ctx); err != nil {
				return err
			}
			if _, err := p.sync(ctx, set); err != nil {
				return err
			}

			_, err = p.repo.Commit(ctx, message)
			if errors.Is(err, shadow.ErrNothingToCommit) {
				out.Println("Nothing to commit (side repo is up to date).")
				return nil
			}
			if err != nil {
				return err
			}

			out.Printf("Auto-committed: %s\n", firstLine(message))
			return nil
		},
	}

	return cmd
}
