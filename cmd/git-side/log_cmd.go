package main

import (
	"errors"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Solexma/git-side/internal/output"
	"github.com/Solexma/git-side/internal/shadow"
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "log [git-log-args...]",
		Short:              "Show the side repo history",
		GroupID:            GroupCore,
		DisableFlagParsing: true,
		Long: `Show the side repo history.

All arguments are passed to git log unchanged.`,
		Example: `  git side log             # Full history
  git side log --oneline   # Compact history
  git side log -p -- .env  # Patches for one path`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			p, err := openProject(ctx)
			if err != nil {
				return err
			}

			err = p.repo.Log(ctx, out.Writer(), args...)
			if errors.Is(err, shadow.ErrNoCommits) {
				out.Println("No commits in side repo yet.")
				return nil
			}
			return err
		},
	}

	return cmd
}

// wantsHelp reports whether a command that passes its arguments through
// was asked for help instead.
func wantsHelp(args []string) bool {
	return slices.Contains(args, "-h") || slices.Contains(args, "--help")
}
