package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ccwidget/internal/adminapi"
	"github.com/theirongolddev/ccwidget/internal/config"
	"github.com/theirongolddev/ccwidget/internal/model"
	"github.com/theirongolddev/ccwidget/internal/pipeline"
)

var (
	flagPeriod string
	flagJSON   bool
	flagLocal  bool
)

var rootCmd = &cobra.Command{
	Use:   "ccwidget",
	Short: "Claude Code usage telemetry CLI",
	Long:  "Aggregate Claude Code session logs into token, cost, quota, and activity reports.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPeriod, "period", "t", "today", "Time period: today, week, month, all")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Emit raw JSON instead of tables")
	rootCmd.PersistentFlags().BoolVar(&flagLocal, "local", false, "Skip the Admin API even when a key is configured")
}

// parsePeriod maps the flag value onto a report period.
func parsePeriod(s string) (pipeline.Period, error) {
	switch s {
	case "today", "day", "d":
		return pipeline.PeriodToday, nil
	case "week", "w":
		return pipeline.PeriodWeek, nil
	case "month", "m":
		return pipeline.PeriodMonth, nil
	case "all", "a":
		return pipeline.PeriodAll, nil
	default:
		return "", fmt.Errorf("unknown period %q (want today, week, month, or all)", s)
	}
}

// loadStats is the shared data path for the report commands. When an
// Admin API key is configured it augments local data with the billing
// API; otherwise everything comes from the local logs.
func loadStats() (model.UsageStats, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	period, err := parsePeriod(flagPeriod)
	if err != nil {
		return model.UsageStats{}, err
	}

	if !flagLocal {
		if client := adminapi.NewClient(config.GetAdminAPIKey(cfg), cfg.AdminAPI.BaseURL); client != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
			defer cancel()

			stats, err := adminapi.BuildUsageStats(ctx, client, cfg)
			if err == nil {
				return stats, nil
			}
			fmt.Fprintf(os.Stderr, "  Admin API unavailable (%v), using local data\n", err)
		}
	}

	return pipeline.GetCurrentUsage(cfg, period)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
