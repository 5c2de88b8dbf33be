package pipeline

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/theirongolddev/ccwidget/internal/model"
	"github.com/theirongolddev/ccwidget/internal/source"
)

// heatmapDays is the trailing window for the activity heatmap: 12 weeks.
const heatmapDays = 84

// CollectDailyActivity scans the given files for genuine user prompts in
// the trailing 84 days and buckets them by UTC calendar date. Days with no
// prompts are absent; the result is sorted ascending by date.
func CollectDailyActivity(files []string) []model.DailyActivity {
	cutoff := time.Now().UTC().AddDate(0, 0, -heatmapDays)
	counts := make(map[string]int)

	scanLines(files, func(line []byte) {
		ts, ok := source.UserPromptTimestamp(line)
		if !ok {
			return
		}
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil || t.Before(cutoff) {
			return
		}
		counts[t.UTC().Format("2006-01-02")]++
	})

	dates := lo.Keys(counts)
	sort.Strings(dates)

	return lo.Map(dates, func(date string, _ int) model.DailyActivity {
		return model.DailyActivity{Date: date, PromptCount: counts[date]}
	})
}

// WeeklyRollups groups daily activity into trailing 7-day buckets anchored
// to the current UTC day: the newest bucket covers [today-6d, today], the
// one before [today-13d, today-7d], and so on. Buckets with no prompts are
// omitted; the result is sorted ascending by week start.
func WeeklyRollups(daily []model.DailyActivity) []model.WeeklyActivity {
	if len(daily) == 0 {
		return nil
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	counts := make(map[string]int)

	for _, d := range daily {
		t, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		daysAgo := int(today.Sub(t).Hours() / 24)
		if daysAgo < 0 {
			daysAgo = 0
		}
		weekStart := today.AddDate(0, 0, -(daysAgo/7)*7-6)
		counts[weekStart.Format("2006-01-02")] += d.PromptCount
	}

	starts := lo.Keys(counts)
	sort.Strings(starts)

	return lo.Map(starts, func(start string, _ int) model.WeeklyActivity {
		return model.WeeklyActivity{WeekStart: start, PromptCount: counts[start]}
	})
}
