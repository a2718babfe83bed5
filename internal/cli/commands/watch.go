package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/run"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/hostgrep/pkg/config"
	"github.com/ccollicutt/hostgrep/pkg/logger"
	"github.com/ccollicutt/hostgrep/pkg/watch"
	"github.com/ccollicutt/hostgrep/pkg/webhook"
)

// WatchOptions holds command-line options for the watch command.
type WatchOptions struct {
	SearchOptions
	Debounce   time.Duration
	WebhookURL string
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <pattern> [hosts-file...]",
		Short: "Search hosts files and search again whenever they change",
		Long: `Run a search, then repeat it each time one of the hosts files changes.

Runs until interrupted (SIGINT or SIGTERM). Globs are expanded once at startup.

When a webhook URL is configured, every search result is also posted to it
as JSON. The bearer token is read from the config file or HOSTGREP_WEBHOOK_TOKEN.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, opts)
		},
	}

	addSearchFlags(cmd, &opts.SearchOptions)
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 0, "Quiet period before re-reading changed files (default from config, 500ms)")
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook", "", "Post each search result to this URL")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, opts *WatchOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	plan, err := resolveSearch(ctx, cmd, args, &opts.SearchOptions)
	if err != nil {
		return err
	}

	debounce := plan.cfg.Watch.Debounce
	if opts.Debounce > 0 {
		debounce = opts.Debounce
	}

	hook := plan.cfg.Watch.Webhook
	if opts.WebhookURL != "" {
		hook.URL = opts.WebhookURL
	}
	notifier, err := newNotifier(hook)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	log := logger.GetInstance().WithFields(map[string]any{"kind": "watch"})

	report, err := search(ctx, plan, out)
	if err != nil {
		return err
	}
	notifier.notify(ctx, webhook.Event{Type: webhook.EventInitial, Report: report})

	w, err := watch.New(plan.files, debounce, func(ctx context.Context, changed []string) {
		log.Info("sources changed", "files", changed)
		report, err := search(ctx, plan, out)
		if err != nil {
			log.Warnf("search failed: %v", err)
			return
		}
		notifier.notify(ctx, webhook.Event{Type: webhook.EventChanged, Changed: changed, Report: report})
	})
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	group := new(run.Group)
	watch.AddQuitSignal(group)
	watch.AddWatcher(ctx, group, w)

	log.Info("watching", "files", plan.files, "debounce", debounce)

	if err := group.Run(); err != nil {
		return fmt.Errorf("watching: %w", err)
	}

	ExitCode = 0
	return nil
}

// notifier forwards search results to an optional webhook. A nil client
// makes notify a no-op.
type notifier struct {
	client *webhook.Client
	log    *logger.Logger
}

func newNotifier(cfg config.WebhookConfig) (*notifier, error) {
	n := &notifier{log: logger.GetInstance()}
	if cfg.URL == "" {
		return n, nil
	}
	client, err := webhook.NewClient(webhook.Options{
		URL:     cfg.URL,
		Token:   cfg.Token,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring webhook: %w", err)
	}
	n.client = client
	return n, nil
}

func (n *notifier) notify(ctx context.Context, ev webhook.Event) {
	if n.client == nil {
		return
	}
	resp := n.client.Send(ctx, ev)
	if !resp.Success() {
		n.log.Warn("webhook failed", "event", ev.Type, "error", resp.Error)
		return
	}
	n.log.Debug("webhook sent", "event", ev.Type, "status", resp.StatusCode, "duration", resp.Duration)
}
