package main

import (
	"github.com/spf13/cobra"

	"github.com/Solexma/git-side/internal/output"
	"github.com/Solexma/git-side/internal/syncer"
	"github.com/Solexma/git-side/internal/ui/static"
	"github.com/Solexma/git-side/internal/ui/styles"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show tracked paths and pending changes",
		Aliases: []string{"st"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Show tracked paths and pending changes.

Pending changes are differences between the tracked paths on disk and the
side repo index; they are staged by add, rm, commit and auto. Staged changes
are recorded by the next commit. Status never stages anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			p, err := openProject(ctx)
			if err != nil {
				return err
			}
			if !p.repo.Exists() {
				out.Println("Side repo not initialized for this project.")
				out.Println(styles.InfoStyle.Render("Run 'git side add <path>' to start tracking files."))
				return nil
			}

			set, err := p.loadTracked()
			if err != nil {
				return err
			}

			out.Section("Tracked paths:")
			if set.Len() == 0 {
				out.Println(styles.MutedStyle.Render("  (none)"))
			} else {
				out.Print(static.RenderList(styles.MutedStyle.Render("•"), set.Paths()))
			}

			pending, err := syncer.Plan(ctx, p.repo, set)
			if err != nil {
				return err
			}
			if !pending.Empty() {
				out.Section("Pending changes:")
				writeDelta(out.Writer(), pending)
			}

			staged, err := p.repo.Status(ctx, p.cfg.RenameThreshold)
			if err != nil {
				return err
			}
			if len(staged) > 0 {
				out.Section("Staged changes:")
				writeChanges(out.Writer(), staged)
			}

			if pending.Empty() && len(staged) == 0 {
				out.Println()
				out.Println("Nothing to commit (side repo is up to date).")
			}
			return nil
		},
	}

	return cmd
}
