package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"netsweep/internal/config"
	"netsweep/internal/database"
	"netsweep/internal/logger"
	"netsweep/internal/probe"
	"netsweep/internal/report"
	"netsweep/internal/scan"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "netsweep --cidr <block> [flags]",
	Short: "Concurrent ICMP reachability sweep of an IPv4 subnet",
	Long: `netsweep probes every usable host in a CIDR block with bounded
concurrency, extracts per-host latency and TTL from the ping output, and
stores each outcome in a SQLite database for later aggregation.`,
	Example: `  netsweep --cidr 192.168.1.0/24
  netsweep --cidr 10.0.0.0/16 --concurrency 100 --timeout 1s
  netsweep --cidr 192.168.1.0/24 --report-dir ./reports`,
	SilenceUsage: true,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Init(cfg.LogLevel); err != nil {
			return err
		}
		return cfg.Validate()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&cfg.CIDR, "cidr", "", "target network in CIDR notation (required)")
	rootCmd.Flags().IntVarP(&cfg.Concurrency, "concurrency", "c", scan.DefaultConcurrency, "maximum in-flight probes")
	rootCmd.Flags().DurationVarP(&cfg.Timeout, "timeout", "t", probe.DefaultTimeout, "per-probe network timeout")
	rootCmd.Flags().StringVar(&cfg.DatabasePath, "db", "netsweep.db", "results database path")
	rootCmd.Flags().StringVar(&cfg.Dialect, "dialect", "auto", "ping output dialect: auto, unix or windows")
	rootCmd.Flags().StringVar(&cfg.ReportDir, "report-dir", "", "write a post-sweep report into this directory")
	rootCmd.Flags().DurationVar(&cfg.SummaryWindow, "summary-window", time.Hour, "window for the stored-results summary")
	rootCmd.Flags().DurationVar(&cfg.Retention, "retention", 0, "delete stored results older than this (0 keeps everything)")
	rootCmd.Flags().StringVar(&cfg.LogLevel, "log-level", "info", "log level: debug, info, warn or error")

	_ = rootCmd.MarkFlagRequired("cidr")
}

func run() error {
	log := logger.Get()

	dialect, err := probe.ParseDialect(cfg.Dialect)
	if err != nil {
		return err
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		return err
	}

	executor := probe.NewExecutor(dialect)
	executor.Timeout = cfg.Timeout

	scanner := scan.New(executor, db, dialect, cfg.Concurrency, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	summary, err := scanner.Scan(ctx, cfg.CIDR)
	if err != nil {
		return err
	}

	log.Info().
		Dur("duration", time.Since(start)).
		Int("total", summary.Total).
		Int("scanned", summary.Scanned).
		Int("active", summary.Active).
		Int("dropped", summary.Dropped).
		Str("success_rate", fmt.Sprintf("%.1f%%", summary.SuccessRate)).
		Msg("sweep summary")

	if stats, statsErr := db.Summarize(cfg.SummaryWindow); statsErr != nil {
		log.Error().Err(statsErr).Msg("failed to query stored statistics")
	} else {
		event := log.Info().
			Int("total_scanned", stats.TotalScanned).
			Int("active", stats.ActiveHosts).
			Int("inactive", stats.InactiveHosts)
		if stats.AvgLatency != nil {
			event = event.
				Float64("avg_latency_ms", *stats.AvgLatency).
				Float64("min_latency_ms", *stats.MinLatency).
				Float64("max_latency_ms", *stats.MaxLatency)
		}
		event.Msg("stored statistics")
	}

	if cfg.ReportDir != "" {
		gen := report.NewGenerator(db, log)
		if _, reportErr := gen.Generate(cfg.ReportDir, cfg.SummaryWindow); reportErr != nil {
			log.Error().Err(reportErr).Msg("report generation failed")
		}
	}

	if cfg.Retention > 0 {
		if pruned, pruneErr := db.Prune(cfg.Retention); pruneErr != nil {
			log.Error().Err(pruneErr).Msg("prune failed")
		} else if pruned > 0 {
			log.Info().Int64("rows", pruned).Msg("pruned old results")
		}
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
