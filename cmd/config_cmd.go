// Package cmd implements the ccwidget CLI commands.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ccwidget/internal/config"
	"github.com/theirongolddev/ccwidget/internal/pipeline"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	dirs := pipeline.DataDirs(cfg)
	if len(dirs) > 0 {
		fmt.Printf("    Data directories: %s\n", strings.Join(dirs, ", "))
	} else {
		fmt.Println("    Data directories: none found")
	}
	fmt.Println()

	fmt.Println("  [Admin API]")
	apiKey := config.GetAdminAPIKey(cfg)
	if apiKey != "" {
		fmt.Printf("    API key: %s\n", config.MaskAPIKey(apiKey))
	} else {
		fmt.Println("    API key: not configured")
	}
	if cfg.AdminAPI.BaseURL != "" {
		fmt.Printf("    Base URL: %s\n", cfg.AdminAPI.BaseURL)
	}
	fmt.Println()

	fmt.Println("  [Plan]")
	fmt.Printf("    Name:             %s\n", cfg.Plan.Name)
	fmt.Printf("    Window limit:     ~%d prompts / 5h\n", cfg.Plan.WindowLimit)
	fmt.Printf("    Weekly allowance: %d hours\n", cfg.Plan.WeekLimitHours)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address: %s\n", cfg.Daemon.Addr)
	fmt.Println()

	fmt.Println("  Run `ccwidget setup` to reconfigure.")
	return nil
}
