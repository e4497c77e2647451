package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Solexma/git-side/internal/config"
	"github.com/Solexma/git-side/internal/output"
	"github.com/Solexma/git-side/internal/registry"
	"github.com/Solexma/git-side/internal/shadow"
	"github.com/Solexma/git-side/internal/ui/styles"
)

func newInitCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Choose where the side repo is stored and create it",
		GroupID: GroupSetup,
		Args:    cobra.NoArgs,
		Long: `Choose where the side repo is stored and create it.

Without --path the project keeps the location it already has, or the
configured base_path on first use. The location is remembered per project;
running init again with another --path points the project at the new
location (an existing store is not moved).`,
		Example: `  git side init                     # Use the default location
  git side init --path ~/sync/side  # Store side repos in a synced folder`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			p, err := identifyProject(ctx)
			if err != nil {
				return err
			}

			var base string
			if path == "" {
				// Keep a location chosen by an earlier init --path.
				base, err = registry.Resolve(p.cfg.RegistryPath, p.id, p.cfg.BasePath)
				if err != nil {
					return err
				}
			} else {
				expanded, err := config.ExpandPath(path)
				if err != nil {
					return err
				}
				if !filepath.IsAbs(expanded) {
					expanded = filepath.Join(p.workDir, expanded)
				}
				base = filepath.Clean(expanded)

				if err := registry.Update(p.cfg.RegistryPath, func(r *registry.Registry) error {
					return r.Set(p.id, base)
				}); err != nil {
					return err
				}
			}

			p.repo = shadow.Open(p.id, base, p.root)
			created, err := p.repo.EnsureCreated(ctx, p.cfg.Branch)
			if err != nil {
				return err
			}

			if created {
				out.Println(styles.Done("Initialized. Side repo will be stored at: " + p.repo.Dir()))
			} else {
				out.Println("Side repo already exists at: " + p.repo.Dir())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Base directory for side repos")
	cmd.MarkFlagDirname("path")

	return cmd
}
