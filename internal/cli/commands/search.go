package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/hostgrep/pkg/config"
	"github.com/ccollicutt/hostgrep/pkg/filter"
	"github.com/ccollicutt/hostgrep/pkg/hostsfile"
	"github.com/ccollicutt/hostgrep/pkg/logger"
	"github.com/ccollicutt/hostgrep/pkg/output"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// SearchOptions holds command-line options shared by search and watch.
type SearchOptions struct {
	ConfigFile string
	Output     string
	Field      string
	Regexp     bool
	All        bool
	Verbose    bool
	Quiet      bool
}

// searchPlan is a fully resolved search: configuration merged with flags
// and source globs expanded.
type searchPlan struct {
	cfg       *config.Config
	files     []string
	filter    *filter.Filter
	formatter output.Formatter
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	opts := &SearchOptions{}

	cmd := &cobra.Command{
		Use:   "search <pattern> [hosts-file...]",
		Short: "Print the IP of every hosts entry matching a pattern",
		Long: `Parse hosts files and print the IP address of each host entry that
matches the pattern. An empty pattern ("") matches every entry.

Hosts files default to the configured sources, or /etc/hosts.

Exit codes:
  0 - At least one line matched
  1 - No lines matched
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, opts)
		},
	}

	addSearchFlags(cmd, opts)

	return cmd
}

func addSearchFlags(cmd *cobra.Command, opts *SearchOptions) {
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Path to a YAML configuration file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", config.DefaultOutput, "Output format (text|json)")
	cmd.Flags().StringVar(&opts.Field, "field", string(filter.FieldAny), "Field to match (any|ip|hosts|comment)")
	cmd.Flags().BoolVarP(&opts.Regexp, "regexp", "E", false, "Treat the pattern as a regular expression")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Include comment and blank lines")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show file, line number and raw text")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")
}

func runSearch(cmd *cobra.Command, args []string, opts *SearchOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	plan, err := resolveSearch(ctx, cmd, args, opts)
	if err != nil {
		return err
	}

	report, err := search(ctx, plan, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if report.HasMatches() {
		ExitCode = 0
	} else {
		ExitCode = 1
	}

	return nil
}

// resolveSearch merges the config file, flags and arguments into a plan.
// Flags only override config values when set explicitly.
func resolveSearch(ctx context.Context, cmd *cobra.Command, args []string, opts *SearchOptions) (*searchPlan, error) {
	cfg, err := config.LoadOrDefault(ctx, opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	InitLogger(cmd, cfg.Log)

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if flags.Changed("field") {
		cfg.Search.Field = opts.Field
	}
	if flags.Changed("regexp") {
		cfg.Search.Regexp = opts.Regexp
	}
	if flags.Changed("all") {
		cfg.Search.All = opts.All
	}
	if len(args) > 1 {
		cfg.Sources = args[1:]
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	files, err := hostsfile.ExpandGlobs(cfg.Sources)
	if err != nil {
		return nil, fmt.Errorf("expanding sources: %w", err)
	}

	f, err := filter.New(
		filter.WithPattern(args[0]),
		filter.WithField(cfg.Search.FieldEnum()),
		filter.WithRegexp(cfg.Search.Regexp),
		filter.WithAll(cfg.Search.All),
	)
	if err != nil {
		return nil, err
	}

	formatter, err := output.NewFormatter(cfg.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return nil, err
	}

	return &searchPlan{
		cfg:       cfg,
		files:     files,
		filter:    f,
		formatter: formatter,
	}, nil
}

// search reads every source, filters the parsed lines and writes the report.
func search(ctx context.Context, plan *searchPlan, w io.Writer) (*output.Report, error) {
	log := logger.GetInstance()
	start := time.Now()

	log.Debug("searching", "pattern", plan.filter.Pattern(), "sources", plan.files)

	parsed, err := hostsfile.ReadFiles(ctx, plan.files)
	if err != nil {
		return nil, err
	}

	if log.IsLevelEnabled(logger.LevelTrace) {
		for _, f := range parsed {
			log.Trace("parsed hosts file", "source", f.Source, "lines", len(f.Lines), "entries", len(f.Entries()))
		}
	}

	report := output.NewReport(parsed, plan.filter, start)
	log.Debug("search complete",
		"lines", report.Summary.Lines,
		"hosts", report.Summary.HostLines,
		"matched", report.Summary.Matched,
		"format", plan.formatter.Name())

	if err := plan.formatter.Format(ctx, report, w); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}

	return report, nil
}

// InitLogger configures the process logger. Precedence is flag, then
// config file, then environment.
func InitLogger(cmd *cobra.Command, fromConfig logger.LogConfig) {
	lc := logger.ConfigFromEnv()
	if fromConfig.Level != "" {
		lc.Level = fromConfig.Level
	}
	if fromConfig.Format != "" {
		lc.Format = fromConfig.Format
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		lc.Level = f.Value.String()
	}
	if f := cmd.Flags().Lookup("log-format"); f != nil && f.Changed {
		lc.Format = f.Value.String()
	}
	logger.InitInstance(lc)
}
