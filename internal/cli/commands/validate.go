package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/hostgrep/pkg/config"
	"github.com/ccollicutt/hostgrep/pkg/hostsfile"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a hostgrep configuration file without searching.

Checks:
  - YAML syntax
  - Output format and search field
  - Source glob syntax
  - Source file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Sources: %d pattern(s)\n", len(cfg.Sources))
	fmt.Fprintf(out, "  Output:  %s\n", cfg.Output)
	fmt.Fprintf(out, "  Field:   %s\n", cfg.Search.FieldEnum())

	files, err := hostsfile.ExpandGlobs(cfg.Sources)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nHosts files:\n")
	for _, f := range files {
		if _, err := hostsfile.ReadFile(ctx, f); err != nil {
			fmt.Fprintf(out, "  - %s (warning: %v)\n", f, err)
			continue
		}
		fmt.Fprintf(out, "  - %s\n", f)
	}

	return nil
}
