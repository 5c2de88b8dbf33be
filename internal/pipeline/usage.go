package pipeline

import (
	"errors"
	"time"

	"github.com/theirongolddev/ccwidget/internal/config"
	"github.com/theirongolddev/ccwidget/internal/model"
	"github.com/theirongolddev/ccwidget/internal/source"
)

// Period selects the time window a snapshot covers.
type Period string

// Periods accepted by GetCurrentUsage.
const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// ErrNoDataDirs indicates that no Claude data directories exist.
var ErrNoDataDirs = errors.New("no Claude data directories found")

// DataDirs returns the configured data directory override, or the probed
// defaults when no override is set.
func DataDirs(cfg config.Config) []string {
	if len(cfg.General.DataDirs) > 0 {
		return cfg.General.DataDirs
	}
	return source.DataDirs()
}

// periodFileAge maps a period to the file modification-age filter used
// during discovery. Each window carries a buffer over the aggregation
// bound because mtime filtering is only a coarse pre-cut; the aggregation
// itself re-filters by entry timestamp.
func periodFileAge(period Period) time.Duration {
	switch period {
	case PeriodToday:
		return 25 * time.Hour
	case PeriodWeek:
		return 8 * 24 * time.Hour
	case PeriodMonth:
		return 32 * 24 * time.Hour
	default:
		return 0 // "all": no filter
	}
}

// periodSince maps a period to the lower timestamp bound for totals.
// A zero time means no bound.
func periodSince(period Period, now time.Time) time.Time {
	switch period {
	case PeriodToday:
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case PeriodWeek:
		return now.Add(-7 * 24 * time.Hour)
	case PeriodMonth:
		return now.Add(-30 * 24 * time.Hour)
	default:
		return time.Time{}
	}
}

// GetCurrentUsage rebuilds the full usage snapshot from raw logs for the
// given period ("today", "week", "month", or "all"). It fails only when no
// data directories exist at all; individual unreadable files are skipped.
func GetCurrentUsage(cfg config.Config, period Period) (model.UsageStats, error) {
	dirs := DataDirs(cfg)
	if len(dirs) == 0 {
		return model.UsageStats{}, ErrNoDataDirs
	}

	usageFiles := source.CollectFiles(dirs, periodFileAge(period))
	var entries []model.ParsedEntry
	for _, file := range usageFiles {
		parsed, err := source.ParseEntries(file)
		if err != nil {
			continue
		}
		entries = append(entries, parsed...)
	}

	// Quota windows use their own, tighter file cuts: 6h of files for the
	// 5h window, 8 days for the week.
	fiveHrFiles := source.CollectFiles(dirs, 6*time.Hour)
	windowPrompts := CountUserPromptsInWindow(fiveHrFiles, quotaWindowHours)

	weekFiles := source.CollectFiles(dirs, 8*24*time.Hour)
	weekPrompts := CountUserPromptsInWindow(weekFiles, 7*24)

	quota := LocalQuota(cfg.Plan, windowPrompts, weekPrompts)

	// Heatmap: 84 days plus a day of buffer.
	activityFiles := source.CollectFiles(dirs, 85*24*time.Hour)
	daily := CollectDailyActivity(activityFiles)
	weekly := WeeklyRollups(daily)

	return Aggregate(entries, periodSince(period, time.Now()), quota, daily, weekly), nil
}

// DaysUntilWeeklyReset counts days to the next UTC Sunday, returning 7
// when today is Sunday.
func DaysUntilWeeklyReset(now time.Time) int {
	weekday := int(now.UTC().Weekday()) // Sunday == 0
	if weekday == 0 {
		return 7
	}
	return 7 - weekday
}
