package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"NewsPulse/internal/app"
	"NewsPulse/internal/config"
	"NewsPulse/internal/logging"
)

// Run is the CLI entry point invoked by main.
func Run(ctx context.Context, args []string, version string) error {
	cmd := &cli.Command{
		Name:    "newspulse",
		Usage:   "AI news classification and deduplication pipeline",
		Version: version,
		Commands: []*cli.Command{
			cmdRun(),
		},
	}

	return cmd.Run(ctx, args)
}

func cmdRun() *cli.Command {
	var (
		configPath string
		input      string
		output     string
		threshold  float64
		limit      int
		retention  int
		workers    int
		logLevel   string
		logFormat  string
	)

	return &cli.Command{
		Name:  "run",
		Usage: "Execute one pipeline run: filter, dedup, classify, enrich, gate, merge, rank, persist",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "Path to the YAML configuration file",
				Sources:     cli.EnvVars("NEWSPULSE_CONFIG"),
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:        "input",
				Usage:       "Path to the raw item export produced by the fetch collaborator",
				Sources:     cli.EnvVars("NEWSPULSE_INPUT"),
				Destination: &input,
			},
			&cli.StringFlag{
				Name:        "output",
				Usage:       "Path of the persisted dataset document",
				Sources:     cli.EnvVars("NEWSPULSE_DATASET"),
				Destination: &output,
			},
			&cli.FloatFlag{
				Name:        "threshold",
				Usage:       "Confidence gate threshold in (0,1]; required here or in config",
				Sources:     cli.EnvVars("NEWSPULSE_THRESHOLD"),
				Destination: &threshold,
			},
			&cli.IntFlag{
				Name:        "limit",
				Usage:       "Optional processing-count limit for bounded runs",
				Sources:     cli.EnvVars("NEWSPULSE_LIMIT"),
				Destination: &limit,
			},
			&cli.IntFlag{
				Name:        "retention-days",
				Usage:       "Retention horizon in days for merged items",
				Sources:     cli.EnvVars("NEWSPULSE_RETENTION_DAYS"),
				Destination: &retention,
			},
			&cli.IntFlag{
				Name:        "workers",
				Usage:       "Bounded worker pool size for per-item processing",
				Sources:     cli.EnvVars("NEWSPULSE_WORKERS"),
				Destination: &workers,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("NEWSPULSE_LOG_LEVEL"),
				Destination: &logLevel,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "Log format (console, json)",
				Sources:     cli.EnvVars("NEWSPULSE_LOG_FORMAT"),
				Destination: &logFormat,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := config.Load(configPath)
			if c.IsSet("input") {
				cfg.Input.Path = input
			}
			if c.IsSet("output") {
				cfg.Output.Path = output
			}
			if c.IsSet("threshold") {
				cfg.Pipeline.Threshold = threshold
			}
			if c.IsSet("limit") {
				cfg.Pipeline.Limit = limit
			}
			if c.IsSet("retention-days") {
				cfg.Pipeline.RetentionDays = retention
			}
			if c.IsSet("workers") {
				cfg.Pipeline.Workers = workers
			}
			if c.IsSet("log-level") {
				cfg.Logging.Level = logLevel
			}
			if c.IsSet("log-format") {
				cfg.Logging.Format = logFormat
			}

			logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

			application, err := app.New(ctx, cfg, logger)
			if err != nil {
				logger.Error("failed to build application", "error", err)
				return err
			}
			defer application.Close()

			report, err := application.Run(ctx)
			if err != nil {
				logger.Error("pipeline run failed", "error", err)
				return err
			}

			logger.Info("run report",
				"run_id", report.RunID,
				"accepted", report.Accepted,
				"rejected", report.Rejected,
				"merged", report.Merged,
			)
			return nil
		},
	}
}
