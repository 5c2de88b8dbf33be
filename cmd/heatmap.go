package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/ccwidget/internal/cli"
	"github.com/theirongolddev/ccwidget/internal/model"
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Daily activity heatmap for the last 12 weeks",
	RunE:  runHeatmap,
}

func init() {
	rootCmd.AddCommand(heatmapCmd)
}

func runHeatmap(_ *cobra.Command, _ []string) error {
	stats, err := loadStats()
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(map[string]any{
			"daily_activity":  stats.DailyActivity,
			"weekly_activity": stats.WeeklyActivity,
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ACTIVITY  Last 12 weeks"))
	fmt.Println()
	fmt.Print(cli.RenderHeatmap(stats.DailyActivity))
	fmt.Println()

	if len(stats.WeeklyActivity) > 0 {
		values := lo.Map(stats.WeeklyActivity, func(w model.WeeklyActivity, _ int) float64 {
			return float64(w.PromptCount)
		})
		total := lo.SumBy(stats.WeeklyActivity, func(w model.WeeklyActivity) int {
			return w.PromptCount
		})
		fmt.Printf("  Weekly  %s  (%s prompts)\n", cli.RenderSparkline(values), cli.FormatNumber(int64(total)))
		fmt.Println()
	}

	return nil
}
