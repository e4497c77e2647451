package main

import (
	"fmt"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/Solexma/git-side/internal/output"
	"github.com/Solexma/git-side/internal/tracked"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <path>...",
		Short:   "Stop tracking files or directories",
		Aliases: []string{"remove"},
		GroupID: GroupCore,
		Args:    cobra.MinimumNArgs(1),
		Long: `Stop tracking files or directories.

Removing a directory also removes every tracked path below it. The files
stay on disk; their removal is staged in the side repo and recorded by the
next commit.`,
		Example: `  git side rm .env     # Stop tracking a file
  git side rm notes/   # Stop tracking a directory and everything under it`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			p, err := openProject(ctx)
			if err != nil {
				return err
			}
			set, err := p.loadTracked()
			if err != nil {
				return err
			}

			paths := make([]string, 0, len(args))
			for _, arg := range args {
				rel, err := tracked.Normalize(p.root, p.workDir, arg)
				if err != nil {
					return err
				}
				if !set.Contains(rel) && len(set.Under(rel)) == 0 {
					return notTrackedError(arg, rel, set.Paths())
				}
				paths = append(paths, rel)
			}

			var removed []string
			for _, rel := range paths {
				removed = append(removed, set.Remove(rel)...)
			}

			if err := p.ensureStore(ctx); err != nil {
				return err
			}
			d, err := p.sync(ctx, set, removed...)
			if err != nil {
				return err
			}
			if err := set.Save(); err != nil {
				return err
			}

			for _, rel := range removed {
				out.Printf("Untracked: %s\n", rel)
			}
			if !d.Empty() {
				out.Printf("Staged %s.\n", d.Summary())
			}
			return nil
		},
	}

	return cmd
}

// notTrackedError reports an unknown path, suggesting the closest tracked one.
func notTrackedError(arg, rel string, candidates []string) error {
	matches := fuzzy.Find(rel, candidates)
	if len(matches) == 0 {
		return fmt.Errorf("not tracked: %s", arg)
	}
	return fmt.Errorf("not tracked: %s (did you mean %q?)", arg, matches[0].Str)
}
