package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Solexma/git-side/internal/config"
	"github.com/Solexma/git-side/internal/git"
	"github.com/Solexma/git-side/internal/hooks"
	"github.com/Solexma/git-side/internal/identity"
	"github.com/Solexma/git-side/internal/log"
	"github.com/Solexma/git-side/internal/output"
	"github.com/Solexma/git-side/internal/ui/styles"
)

func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hook",
		Short:   "Manage the git hook that runs auto",
		GroupID: GroupAuto,
		Long: `Manage the git hook that runs "git side auto".

The hook lives in the primary repository's local hooks directory and is never
shared with other clones. Installing overwrites any script already in that
slot; existing hooks are not chained. The hook ignores failures of auto, so
it never blocks the primary operation.`,
		Example: `  git side hook install              # Install the post-commit hook
  git side hook install --on pre-push
  git side hook uninstall`,
	}

	cmd.AddCommand(newHookInstallCmd())
	cmd.AddCommand(newHookUninstallCmd())

	return cmd
}

// hookTarget resolves the event flag (falling back to config) and the
// primary repository's hooks directory.
func hookTarget(cmd *cobra.Command, on string) (hooks.Event, string, error) {
	ctx := cmd.Context()
	cfg := configFromContext(ctx)

	if on == "" {
		on = cfg.HookEvent
	}
	event, err := hooks.ParseEvent(on)
	if err != nil {
		return "", "", err
	}

	workDir := config.WorkDirFromContext(ctx)
	if !git.IsInsideRepo(ctx, workDir) {
		return "", "", fmt.Errorf("%s: %w", workDir, identity.ErrNotAProject)
	}
	dir, err := hooks.Dir(ctx, workDir)
	if err != nil {
		return "", "", err
	}
	return event, dir, nil
}

func newHookInstallCmd() *cobra.Command {
	var on string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the hook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			event, dir, err := hookTarget(cmd, on)
			if err != nil {
				return err
			}

			res, err := hooks.Install(dir, event, configFromContext(ctx).HookCommand)
			if err != nil {
				return err
			}
			if res.Replaced {
				l.Warn("%v: %s was overwritten", hooks.ErrHookSlotOccupied, res.Path)
			}

			verb := "Installed"
			if res.Updated {
				verb = "Updated"
			}
			out.Println(styles.Done(fmt.Sprintf("%s %s hook: %s", verb, event, res.Path)))
			return nil
		},
	}

	cmd.Flags().StringVar(&on, "on", "", "Hook event: "+config.FormatOptions(config.ValidHookEvents))
	cmd.RegisterFlagCompletionFunc("on", completeHookEvents)

	return cmd
}

func newHookUninstallCmd() *cobra.Command {
	var on string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the hook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			event, dir, err := hookTarget(cmd, on)
			if err != nil {
				return err
			}

			removed, err := hooks.Uninstall(dir, event)
			if err != nil {
				return err
			}
			if !removed {
				out.Printf("No git-side %s hook installed.\n", event)
				return nil
			}
			out.Println(styles.Done(fmt.Sprintf("Removed %s hook.", event)))
			return nil
		},
	}

	cmd.Flags().StringVar(&on, "on", "", "Hook event: "+config.FormatOptions(config.ValidHookEvents))
	cmd.RegisterFlagCompletionFunc("on", completeHookEvents)

	return cmd
}

func completeHookEvents(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return config.ValidHookEvents, cobra.ShellCompDirectiveNoFileComp
}
