package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/EcomDev/algolia-monitor/internal/logging"
	"github.com/EcomDev/algolia-monitor/pkg/algolia"
	"github.com/EcomDev/algolia-monitor/pkg/monitor"
	"github.com/EcomDev/algolia-monitor/pkg/report"
	"github.com/EcomDev/algolia-monitor/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// WatchOptions holds command-line options for the monitoring run.
type WatchOptions struct {
	ExpectedRecords int64
	Delay           int
	Delta           int64
	AllLogs         bool
	Output          string

	// Webhook options
	WebhookURL   string
	WebhookToken string
}

// RegisterWatchFlags wires the monitoring flags onto the root command.
func RegisterWatchFlags(cmd *cobra.Command, opts *WatchOptions) {
	cmd.Flags().Int64VarP(&opts.ExpectedRecords, "expected-records", "e", 0, "Initial baseline record count (0 = fetch on startup)")
	cmd.Flags().IntVarP(&opts.Delay, "delay", "d", 30, "Seconds between polls")
	cmd.Flags().Int64Var(&opts.Delta, "delta", 1000, "Minimum absolute record count change to report")
	cmd.Flags().BoolVarP(&opts.AllLogs, "all-logs", "a", false, "Print every new build log entry each cycle, skip count comparison")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint to POST change reports to")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
}

// RunWatch builds the client and monitor from arguments and polls until
// the process is terminated.
func RunWatch(cmd *cobra.Command, args []string, opts *WatchOptions) error {
	appID, apiKey, indexName := args[0], args[1], args[2]

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := monitor.Config{
		AppID:           appID,
		IndexName:       indexName,
		ExpectedRecords: opts.ExpectedRecords,
		Delay:           time.Duration(opts.Delay) * time.Second,
		Delta:           opts.Delta,
		AllLogs:         opts.AllLogs,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	formatter, err := report.NewFormatter(opts.Output)
	if err != nil {
		return err
	}

	logger := logging.New()
	defer func() { _ = logger.Sync() }()

	client := algolia.NewClient(algolia.ClientOptions{
		AppID:     appID,
		APIKey:    apiKey,
		IndexName: indexName,
	})

	monitorOpts := []monitor.Option{
		monitor.WithFormatter(formatter),
		monitor.WithOutput(os.Stdout),
		monitor.WithLogger(logger),
	}
	if opts.WebhookURL != "" {
		monitorOpts = append(monitorOpts, monitor.WithSink(&webhookSink{
			client: webhook.NewClient(),
			opts: webhook.SendOptions{
				URL:   opts.WebhookURL,
				Token: opts.WebhookToken,
			},
		}))
	}

	m := monitor.New(cfg, client, monitorOpts...)
	if err := m.Run(ctx); err != nil {
		// Fatal remote errors are reported here rather than returned so the
		// process exits 1, distinct from usage errors.
		logger.Errorf("monitoring stopped: %v", err)
		ExitCode = 1
		return nil
	}
	return nil
}

// webhookSink adapts the webhook client to the monitor's Sink interface.
type webhookSink struct {
	client *webhook.Client
	opts   webhook.SendOptions
}

func (s *webhookSink) Deliver(ctx context.Context, rep *report.ChangeReport) error {
	resp := s.client.Send(ctx, rep, s.opts)
	if !resp.Success() {
		if resp.Error != nil {
			return resp.Error
		}
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
