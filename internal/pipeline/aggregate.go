// Package pipeline folds parsed log entries into usage snapshots: totals,
// active sessions, quota estimates, and activity heatmaps.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/ccwidget/internal/config"
	"github.com/theirongolddev/ccwidget/internal/model"
)

// activeSessionWindow is how far back a session's last assistant turn may
// be for the session to count as active.
const activeSessionWindow = 24 * time.Hour

// sessionAccum tracks one session id during the active-session fold.
// First/last activity are compared as RFC3339 strings; the 24h window
// check uses parsed instants.
type sessionAccum struct {
	cwd           string
	firstActivity string
	lastActivity  string
	messageCount  int
	totalTokens   uint64
	costUSD       float64
	model         string // model of the most recent entry
	contextTokens uint64 // live context size at the most recent entry
}

// Aggregate folds parsed entries into a complete usage snapshot. Entries
// timestamped before since are excluded from totals (zero since means no
// bound); the active-session table uses its own trailing 24-hour window
// and is independent of the period filter. Quota, daily, and weekly data
// are computed by the caller and merged in unchanged.
func Aggregate(
	entries []model.ParsedEntry,
	since time.Time,
	quota model.QuotaInfo,
	daily []model.DailyActivity,
	weekly []model.WeeklyActivity,
) model.UsageStats {
	byModel := make(map[string]*model.TokenUsage)
	var total model.TokenUsage
	var latestTimestamp string
	messageCount := 0

	for _, entry := range entries {
		// Period filter for totals. Entries with unparseable timestamps
		// are kept, matching the tolerant parse policy.
		if !since.IsZero() {
			if ts, err := time.Parse(time.RFC3339, entry.Timestamp); err == nil && ts.Before(since) {
				continue
			}
		}

		messageCount++
		if entry.Timestamp > latestTimestamp {
			latestTimestamp = entry.Timestamp
		}

		mu, ok := byModel[entry.Model]
		if !ok {
			mu = &model.TokenUsage{}
			byModel[entry.Model] = mu
		}
		mu.Add(entry.Tokens)
		total.Add(entry.Tokens)
	}

	modelUsages := make([]model.ModelUsage, 0, len(byModel))
	for name, tokens := range byModel {
		modelUsages = append(modelUsages, model.ModelUsage{
			Model:       name,
			DisplayName: config.ModelDisplayName(name),
			Tokens:      *tokens,
			CostUSD:     config.CalculateCost(name, *tokens),
		})
	}

	// Highest input+output first.
	sort.SliceStable(modelUsages, func(i, j int) bool {
		a := modelUsages[i].Tokens.InputTokens + modelUsages[i].Tokens.OutputTokens
		b := modelUsages[j].Tokens.InputTokens + modelUsages[j].Tokens.OutputTokens
		return a > b
	})

	var totalCost float64
	for _, mu := range modelUsages {
		totalCost += mu.CostUSD
	}

	return model.UsageStats{
		TotalTokens:    total,
		TotalCostUSD:   totalCost,
		ByModel:        modelUsages,
		MessageCount:   messageCount,
		LastUpdated:    latestTimestamp,
		Quota:          quota,
		ActiveSessions: BuildActiveSessions(entries),
		DailyActivity:  daily,
		WeeklyActivity: weekly,
	}
}

// BuildActiveSessions folds entries into the trailing-24h session table,
// sorted by last activity, most recent first.
func BuildActiveSessions(entries []model.ParsedEntry) []model.ActiveSession {
	dayAgo := time.Now().Add(-activeSessionWindow)
	accums := make(map[string]*sessionAccum)

	for _, entry := range entries {
		if entry.SessionID == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, entry.Timestamp)
		if err != nil || ts.Before(dayAgo) {
			continue
		}

		contextTokens := entry.Tokens.CacheReadInputTokens +
			entry.Tokens.CacheCreationInputTokens +
			entry.Tokens.InputTokens

		acc, ok := accums[entry.SessionID]
		if !ok {
			acc = &sessionAccum{
				cwd:           entry.Cwd,
				firstActivity: entry.Timestamp,
				lastActivity:  entry.Timestamp,
				model:         entry.Model,
				contextTokens: contextTokens,
			}
			accums[entry.SessionID] = acc
		}

		if entry.Timestamp < acc.firstActivity {
			acc.firstActivity = entry.Timestamp
		}
		if entry.Timestamp > acc.lastActivity {
			acc.lastActivity = entry.Timestamp
			acc.model = entry.Model
			acc.contextTokens = contextTokens
		}
		acc.messageCount++
		acc.totalTokens += entry.Tokens.Total()
		acc.costUSD += config.CalculateCost(entry.Model, entry.Tokens)
	}

	sessions := make([]model.ActiveSession, 0, len(accums))
	for id, acc := range accums {
		sessions = append(sessions, model.ActiveSession{
			SessionID:               shortSessionID(id),
			Project:                 projectName(acc.cwd),
			Directory:               acc.cwd,
			FirstActivity:           acc.firstActivity,
			LastActivity:            acc.lastActivity,
			DurationMinutes:         durationMinutes(acc.firstActivity, acc.lastActivity),
			MessageCount:            acc.messageCount,
			TotalTokens:             acc.totalTokens,
			CostUSD:                 acc.costUSD,
			Model:                   acc.model,
			ModelDisplayName:        config.ModelDisplayName(acc.model),
			ContextRemainingPercent: config.ContextRemainingPercent(acc.contextTokens, acc.model),
			TodoCount:               PendingTodoCount(id),
		})
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].LastActivity > sessions[j].LastActivity
	})
	return sessions
}

// shortSessionID truncates a session id to its first 8 characters for
// display. Collisions are accepted.
func shortSessionID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// projectName is the last path segment of the working directory.
func projectName(cwd string) string {
	if cwd == "" {
		return ""
	}
	parts := strings.Split(cwd, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return cwd
}

func durationMinutes(first, last string) int {
	f, errF := time.Parse(time.RFC3339, first)
	l, errL := time.Parse(time.RFC3339, last)
	if errF != nil || errL != nil {
		return 0
	}
	mins := int(l.Sub(f).Minutes())
	if mins < 0 {
		return 0
	}
	return mins
}
