package main

import (
	"github.com/spf13/cobra"

	"github.com/Solexma/git-side/internal/output"
	"github.com/Solexma/git-side/internal/remote"
	"github.com/Solexma/git-side/internal/ui/static"
	"github.com/Solexma/git-side/internal/ui/styles"
)

func newRemoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "remote [git-remote-args...]",
		Short:              "List or manage side repo remotes",
		GroupID:            GroupRemote,
		DisableFlagParsing: true,
		Long: `List or manage side repo remotes.

Without arguments the configured remotes are listed. Any arguments are passed
to git remote in the side repo unchanged.`,
		Example: `  git side remote                                   # List remotes
  git side remote add origin git@host:me/side.git    # Add a remote
  git side remote remove origin                      # Remove a remote
  git side remote set-url origin git@host:me/new.git`,
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
			if err := p.ensureStore(ctx); err != nil {
				return err
			}

			switch {
			case len(args) == 0:
				remotes, err := remote.List(ctx, p.repo)
				if err != nil {
					return err
				}
				if len(remotes) == 0 {
					out.Println("No remotes configured.")
					return nil
				}
				rows := make([][]string, len(remotes))
				for i, r := range remotes {
					rows[i] = []string{r.Name, r.URL}
				}
				out.Print(static.RenderTable([]string{"NAME", "URL"}, rows))
				return nil

			case len(args) == 3 && args[0] == "add":
				if err := remote.Add(ctx, p.repo, args[1], args[2]); err != nil {
					return err
				}
				out.Println(styles.Done("Remote added."))
				return nil

			case len(args) == 2 && (args[0] == "remove" || args[0] == "rm"):
				if err := remote.Remove(ctx, p.repo, args[1]); err != nil {
					return err
				}
				out.Println(styles.Done("Remote removed."))
				return nil
			}

			return remote.Passthrough(ctx, p.repo, out.Writer(), args...)
		},
	}

	return cmd
}
