package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Solexma/git-side/internal/output"
	"github.com/Solexma/git-side/internal/tracked"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <path>...",
		Short:   "Track files or directories in the side repo",
		GroupID: GroupCore,
		Args:    cobra.MinimumNArgs(1),
		Long: `Track files or directories in the side repo.

Paths are relative to the current directory and must exist inside the
project. A directory is tracked recursively, including files the primary
repository ignores. The side repo is created on first use and the tracked
paths are staged right away.`,
		Example: `  git side add .env             # Track a single file
  git side add notes/ todo.md   # Track a directory and a file
  git side add $PWD/.env.local  # Absolute paths inside the project work too`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			p, err := openProject(ctx)
			if err != nil {
				return err
			}

			// Validate every argument before changing anything
			paths := make([]string, 0, len(args))
			for _, arg := range args {
				rel, err := tracked.Normalize(p.root, p.workDir, arg)
				if err != nil {
					return err
				}
				if _, err := os.Lstat(filepath.Join(p.root, filepath.FromSlash(rel))); err != nil {
					if errors.Is(err, os.ErrNotExist) {
						return fmt.Errorf("path does not exist: %s", arg)
					}
					return err
				}
				paths = append(paths, rel)
			}

			if err := p.ensureStore(ctx); err != nil {
				return err
			}
			set, err := p.loadTracked()
			if err != nil {
				return err
			}
			for _, rel := range paths {
				set.Add(rel)
			}
			if err := set.Save(); err != nil {
				return err
			}

			d, err := p.sync(ctx, set)
			if err != nil {
				return err
			}

			for _, rel := range paths {
				out.Printf("Tracking: %s\n", rel)
			}
			if !d.Empty() {
				out.Printf("Staged %s.\n", d.Summary())
			}
			return nil
		},
	}

	return cmd
}
