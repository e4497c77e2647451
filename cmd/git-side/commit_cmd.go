package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Solexma/git-side/internal/output"
	"github.com/Solexma/git-side/internal/shadow"
)

func newCommitCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:     "commit -m <message>",
		Short:   "Record tracked changes in the side repo",
		Aliases: []string{"ci"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Record tracked changes in the side repo.

The tracked paths are synced first, so the commit always reflects what is on
disk. Use "-m -" to read the message from piped stdin.`,
		Example: `  git side commit -m "Update env"        # Commit with a message
  git log -1 --format=%B | git side commit -m -   # Message from stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if message == "-" {
				msg, err := readStdinIfPiped(cmd.InOrStdin())
				if err != nil {
					return err
				}
				message = msg
			}
			if strings.TrimSpace(message) == "" {
				return fmt.Errorf("empty commit message")
			}

			p, err := openProject(ctx)
			if err != nil {
				return err
			}
			if err := p.ensureStore(ctx); err != nil {
				return err
			}
			set, err := p.loadTracked()
			if err != nil {
				return err
			}
			if _, err := p.sync(ctx, set); err != nil {
				return err
			}

			hash, err := p.repo.Commit(ctx, message)
			if errors.Is(err, shadow.ErrNothingToCommit) {
				return fmt.Errorf("%w (side repo is up to date)", err)
			}
			if err != nil {
				return err
			}

			out.Printf("Committed to side repo. [%s] %s\n", hash, firstLine(message))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", `Commit message ("-" reads stdin)`)
	cmd.MarkFlagRequired("message")

	return cmd
}
