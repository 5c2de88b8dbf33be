package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ccwidget/internal/cli"
	"github.com/theirongolddev/ccwidget/internal/pipeline"
)

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Rolling window and weekly quota estimates",
	RunE:  runQuota,
}

func init() {
	rootCmd.AddCommand(quotaCmd)
}

func runQuota(_ *cobra.Command, _ []string) error {
	stats, err := loadStats()
	if err != nil {
		return err
	}

	q := stats.Quota

	if flagJSON {
		return printJSON(q)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("QUOTA  %s plan", q.Plan)))
	fmt.Println()
	fmt.Printf("  %dh window   %s\n", q.WindowHours, cli.RenderQuotaBar(q.UsagePercent, 30))
	fmt.Printf("  This week   %s\n", cli.RenderQuotaBar(q.WeekUsagePercent, 30))
	fmt.Println()
	fmt.Printf("  Messages in window: %s of ~%s\n",
		cli.FormatNumber(int64(q.MessagesInWindow)),
		cli.FormatNumber(int64(q.EstimatedLimit)))
	fmt.Printf("  Weekly reset in %d days (Sunday 00:00 UTC)\n",
		pipeline.DaysUntilWeeklyReset(time.Now()))
	fmt.Println()

	return nil
}
