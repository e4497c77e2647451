package main

import (
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Solexma/git-side/internal/hooks"
	"github.com/Solexma/git-side/internal/log"
	"github.com/Solexma/git-side/internal/output"
	"github.com/Solexma/git-side/internal/remote"
	"github.com/Solexma/git-side/internal/ui/static"
	"github.com/Solexma/git-side/internal/ui/styles"
)

const projectURL = "https://github.com/Solexma/git-side"

func newInfoCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:     "info",
		Short:   "Show where the side repo lives and what it tracks",
		GroupID: GroupSetup,
		Args:    cobra.NoArgs,
		Example: `  git side info          # Show project identity and side repo location
  git side info --copy   # Also copy the side repo path to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			out.Println(styles.Bold.Render(versionString()))
			out.Println(styles.MutedStyle.Render(projectURL))
			out.Println()

			p, err := openProject(ctx)
			if err != nil {
				return err
			}

			initialized := p.repo.Exists()
			fields := [][2]string{
				{"Root SHA", styles.AccentStyle.Render(p.id.String())},
				{"Work tree", p.root},
				{"Side repo", p.repo.Dir()},
				{"Initialized", yesNo(initialized)},
			}

			var paths []string
			if initialized {
				set, err := p.loadTracked()
				if err != nil {
					return err
				}
				paths = set.Paths()
				fields = append(fields, [2]string{"Tracked paths", strconv.Itoa(set.Len())})

				remotes, err := remote.List(ctx, p.repo)
				if err != nil {
					return err
				}
				if len(remotes) > 0 {
					names := make([]string, len(remotes))
					for i, r := range remotes {
						names[i] = r.Name + " (" + r.URL + ")"
					}
					fields = append(fields, [2]string{"Remotes", strings.Join(names, ", ")})
				}
			}

			if dir, err := hooks.Dir(ctx, p.root); err == nil {
				installed := hooks.Installed(dir)
				events := make([]string, len(installed))
				for i, e := range installed {
					events[i] = string(e)
				}
				value := strings.Join(events, ", ")
				if value == "" {
					value = styles.MutedStyle.Render("none")
				}
				fields = append(fields, [2]string{"Hooks", value})
			}

			out.Print(static.RenderFields(fields))
			if len(paths) > 0 {
				out.Println()
				out.Print(static.RenderList(styles.MutedStyle.Render("•"), paths))
			}

			if copyToClipboard {
				if err := clipboard.WriteAll(p.repo.Dir()); err != nil {
					l.Warn("failed to copy to clipboard: %v", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the side repo path to the clipboard")

	return cmd
}

func yesNo(b bool) string {
	if b {
		return styles.SuccessStyle.Render("yes")
	}
	return styles.WarningStyle.Render("no")
}
