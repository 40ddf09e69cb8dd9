// Package cli provides the command-line interface for algolia-monitor.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/EcomDev/algolia-monitor/internal/cli/commands"
)

// Execute runs the root command and returns the exit code. SIGINT and
// SIGTERM cancel the command context so the poll loop shuts down cleanly.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or usage error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &commands.WatchOptions{}

	rootCmd := &cobra.Command{
		Use:   "algolia-monitor APP_ID API_KEY INDEX_NAME",
		Short: "Watch an Algolia index for record count changes",
		Long: `algolia-monitor polls the record count of one Algolia index and, when the
count moves by at least the configured delta, fetches the index's recent
build logs and prints what was added, updated, or deleted.

Reports go to stdout; diagnostics go to stderr. The tool runs until it is
terminated.

Exit codes:
  0 - Graceful shutdown (SIGINT/SIGTERM)
  1 - Fatal remote error (bad credentials, unknown index)
  2 - Configuration or usage error`,
		Args:          cobra.ExactArgs(3),
		Version:       commands.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunWatch(cmd, args, opts)
		},
	}

	commands.RegisterWatchFlags(rootCmd, opts)

	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
