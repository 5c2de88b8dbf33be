package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ccwidget/internal/cli"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Usage summary: tokens, costs, and quota",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	stats, err := loadStats()
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(stats)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CLAUDE USAGE  %s", flagPeriod)))
	fmt.Println()

	rows := [][]string{
		{"Messages", cli.FormatNumber(int64(stats.MessageCount))},
		{"Total Tokens", cli.FormatTokens(stats.TotalTokens.Total())},
		{"---"},
		{"Input", cli.FormatTokens(stats.TotalTokens.InputTokens)},
		{"Output", cli.FormatTokens(stats.TotalTokens.OutputTokens)},
		{"Cache Write", cli.FormatTokens(stats.TotalTokens.CacheCreationInputTokens)},
		{"Cache Read", cli.FormatTokens(stats.TotalTokens.CacheReadInputTokens)},
		{"---"},
		{"Cost (est)", cli.FormatCost(stats.TotalCostUSD)},
	}
	if stats.LastUpdated != "" {
		rows = append(rows, []string{"Last Activity", stats.LastUpdated})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if len(stats.ByModel) > 0 {
		fmt.Println()
		modelRows := make([][]string, 0, len(stats.ByModel))
		for _, m := range stats.ByModel {
			modelRows = append(modelRows, []string{
				m.DisplayName,
				cli.FormatTokens(m.Tokens.InputTokens),
				cli.FormatTokens(m.Tokens.OutputTokens),
				cli.FormatTokens(m.Tokens.CacheReadInputTokens),
				cli.FormatCost(m.CostUSD),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "By Model",
			Headers: []string{"Model", "Input", "Output", "Cache Read", "Cost"},
			Rows:    modelRows,
		}))
	}

	fmt.Println()
	fmt.Printf("  5h window   %s\n", cli.RenderQuotaBar(stats.Quota.UsagePercent, 30))
	fmt.Printf("  This week   %s\n", cli.RenderQuotaBar(stats.Quota.WeekUsagePercent, 30))
	fmt.Println()

	return nil
}
