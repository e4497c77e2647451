package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Solexma/git-side/internal/config"
	"github.com/Solexma/git-side/internal/git"
	"github.com/Solexma/git-side/internal/log"
	"github.com/Solexma/git-side/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupAuto   = "auto"
	GroupRemote = "remote"
	GroupSetup  = "setup"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git-side",
		Short: "Version files that should not live in the main repo",
		Long: `git-side versions selected files and directories of a project in a
separate, per-project bare repository. The primary repository never sees them:
nothing is written to its .git directory, index or history.

The shadow repository is keyed by the project's root commit, so every clone
of the project shares the same side history.

Exit codes:
  0  success
  1  generic failure
  2  not a project (not a git work tree, or no initial commit)
  3  path outside project
  4  no remote configured
  5  remote unreachable
  6  location registry corrupt
  7  sync aborted`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip git check for completion and help commands
			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
				return nil
			}

			// Validate mutually exclusive flags
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}

			// Flags are parsed now; replace the bootstrap logger.
			cmd.SetContext(log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet)))

			// Check git is available
			return git.CheckGit()
		},
		// Run is not set - shows help when no subcommand provided
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show git commands being executed")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")

	// Version flag
	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	cmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupAuto, Title: "Automation Commands:"},
		&cobra.Group{ID: GroupRemote, Title: "Remote Commands:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"},
	)

	// Core commands
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newRmCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newCommitCmd())
	cmd.AddCommand(newLogCmd())

	// Automation commands
	cmd.AddCommand(newAutoCmd())
	cmd.AddCommand(newHookCmd())

	// Remote commands
	cmd.AddCommand(newRemoteCmd())
	cmd.AddCommand(newPushCmd())
	cmd.AddCommand(newPullCmd())

	// Setup commands
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newInfoCmd())

	return cmd
}

// Execute runs the root command and exits with the code mapped from its error.
func Execute() {
	// Get working directory
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "git-side: failed to get working directory: %v\n", err)
		os.Exit(exitError)
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Create logger (stderr for diagnostics)
	logger := log.New(os.Stderr, false, false)
	ctx = log.WithLogger(ctx, logger)

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("%v (using defaults)", err)
	}
	ctx = config.WithConfig(ctx, &cfg)
	ctx = config.WithWorkDir(ctx, workDir)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, output.Terminal(os.Stdout))

	// Store context for commands to use
	rootCmd.SetContext(ctx)

	err = rootCmd.Execute()
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "git-side:", err)
		if exitCode(err) == exitError {
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, "Run 'git side -h' for help")
		}
		os.Exit(exitCode(err))
	}
}
