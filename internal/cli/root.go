// Package cli provides the command-line interface for hostgrep.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/hostgrep/internal/cli/commands"
	"github.com/ccollicutt/hostgrep/pkg/logger"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return ExecuteArgs(os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteArgs runs the root command with args and returns the exit code.
func ExecuteArgs(args []string, stdout, stderr io.Writer) int {
	commands.ExitCode = 0

	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hostgrep",
		Short: "Search hosts files for host entries",
		Long: `hostgrep parses /etc/hosts style files and reports the host entries
that match a pattern.

Each line is classified as blank, a comment, or a host entry. Host entries
carry an IP address, a hostname and an optional trailing comment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commands.InitLogger(cmd, logger.LogConfig{})
		},
	}

	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", logger.FormatText, "Log format (text|json)")

	rootCmd.AddCommand(commands.NewSearchCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
