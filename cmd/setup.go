package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/ccwidget/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	apiKey := ""
	plan := cfg.Plan.Name
	if plan == "" {
		plan = "Max 5x"
	}

	keyDesc := "For real usage data from the billing API. Leave blank to skip."
	if existing := config.GetAdminAPIKey(cfg); existing != "" {
		keyDesc = fmt.Sprintf("Current: %s. Leave blank to keep.", config.MaskAPIKey(existing))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Anthropic Admin API key").
				Description(keyDesc).
				Placeholder("sk-ant-admin-...").
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
			huh.NewSelect[string]().
				Title("Subscription plan").
				Description("Used to estimate quota limits.").
				Options(
					huh.NewOption("Pro", "Pro"),
					huh.NewOption("Max 5x", "Max 5x"),
					huh.NewOption("Max 20x", "Max 20x"),
				).
				Value(&plan),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if apiKey != "" {
		cfg.AdminAPI.APIKey = apiKey
	}
	cfg.Plan.Name = plan
	switch plan {
	case "Pro":
		cfg.Plan.WindowLimit = 25
		cfg.Plan.WeekLimitHours = 60
	case "Max 20x":
		cfg.Plan.WindowLimit = 500
		cfg.Plan.WeekLimitHours = 840
	default:
		cfg.Plan.WindowLimit = 125
		cfg.Plan.WeekLimitHours = 210
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `ccwidget setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
