package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ccwidget/internal/cli"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Sessions active in the last 24 hours",
	RunE:  runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(_ *cobra.Command, _ []string) error {
	stats, err := loadStats()
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(stats.ActiveSessions)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ACTIVE SESSIONS  Last 24h"))
	fmt.Println()

	if len(stats.ActiveSessions) == 0 {
		fmt.Println("  No sessions active in the last 24 hours.")
		fmt.Println()
		return nil
	}

	now := time.Now()
	rows := make([][]string, 0, len(stats.ActiveSessions))
	for _, s := range stats.ActiveSessions {
		todo := ""
		if s.TodoCount > 0 {
			todo = cli.FormatNumber(int64(s.TodoCount))
		}
		rows = append(rows, []string{
			s.Project,
			s.ModelDisplayName,
			cli.FormatRelativeTime(s.LastActivity, now),
			cli.FormatMinutes(s.DurationMinutes),
			cli.FormatNumber(int64(s.MessageCount)),
			cli.FormatTokens(s.TotalTokens),
			cli.FormatCost(s.CostUSD),
			cli.FormatPercent(s.ContextRemainingPercent),
			todo,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Project", "Model", "Last", "Duration", "Msgs", "Tokens", "Cost", "Ctx Left", "Todos"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
