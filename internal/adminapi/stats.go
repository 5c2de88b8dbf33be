package adminapi

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/theirongolddev/ccwidget/internal/config"
	"github.com/theirongolddev/ccwidget/internal/model"
	"github.com/theirongolddev/ccwidget/internal/pipeline"
	"github.com/theirongolddev/ccwidget/internal/source"
)

// supplementalData is everything the snapshot needs that only local JSONL
// files can provide: sessions, quota windows, the heatmap, and the latest
// local timestamp.
type supplementalData struct {
	activeSessions []model.ActiveSession
	quota          model.QuotaInfo
	daily          []model.DailyActivity
	weekly         []model.WeeklyActivity
	lastUpdated    string
	messageCount   int
}

// computeSupplemental gathers local data. It runs on its own goroutine so
// file scanning never blocks the remote fetch.
func computeSupplemental(cfg config.Config) supplementalData {
	dirs := pipeline.DataDirs(cfg)

	// Sessions come from the last 25 hours of files.
	sessionFiles := source.CollectFiles(dirs, 25*time.Hour)
	var entries []model.ParsedEntry
	for _, file := range sessionFiles {
		parsed, err := source.ParseEntries(file)
		if err != nil {
			continue
		}
		entries = append(entries, parsed...)
	}

	var lastUpdated string
	for _, e := range entries {
		if e.Timestamp > lastUpdated {
			lastUpdated = e.Timestamp
		}
	}

	fiveHrFiles := source.CollectFiles(dirs, 6*time.Hour)
	windowPrompts := pipeline.CountUserPromptsInWindow(fiveHrFiles, 5)
	windowWeighted := pipeline.CountWeightedUsageInWindow(fiveHrFiles, 5)

	weekFiles := source.CollectFiles(dirs, 8*24*time.Hour)
	weekWeighted := pipeline.CountWeightedUsageInWindow(weekFiles, 7*24)

	activityFiles := source.CollectFiles(dirs, 85*24*time.Hour)
	daily := pipeline.CollectDailyActivity(activityFiles)

	return supplementalData{
		activeSessions: pipeline.BuildActiveSessions(entries),
		quota:          pipeline.RemoteQuota(cfg.Plan, windowPrompts, windowWeighted, weekWeighted),
		daily:          daily,
		weekly:         pipeline.WeeklyRollups(daily),
		lastUpdated:    lastUpdated,
		messageCount:   len(entries),
	}
}

// BuildUsageStats assembles a snapshot whose per-model token and cost
// figures come from the Admin API (today, UTC) while sessions, quota, and
// activity come from local logs. The local computation runs concurrently
// with the remote fetches and is joined before assembly.
func BuildUsageStats(ctx context.Context, client *Client, cfg config.Config) (model.UsageStats, error) {
	localCh := make(chan supplementalData, 1)
	go func() {
		localCh <- computeSupplemental(cfg)
	}()

	now := time.Now().UTC()
	y, m, d := now.Date()
	todayStart := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format("2006-01-02T15:04:05Z")
	endingAt := now.Format("2006-01-02T15:04:05Z")

	usageReport, err := client.FetchUsageReport(ctx, todayStart, endingAt)
	if err != nil {
		return model.UsageStats{}, err
	}
	costReport, err := client.FetchCostReport(ctx, todayStart, endingAt)
	if err != nil {
		return model.UsageStats{}, err
	}

	// Token counts by model.
	modelTokens := make(map[string]*model.TokenUsage)
	for _, bucket := range usageReport.Data {
		for _, result := range bucket.Results {
			name := result.Model
			if name == "" {
				name = "unknown"
			}
			tu, ok := modelTokens[name]
			if !ok {
				tu = &model.TokenUsage{}
				modelTokens[name] = tu
			}
			tu.InputTokens += result.UncachedInputTokens
			tu.OutputTokens += result.OutputTokens
			tu.CacheReadInputTokens += result.CacheReadInputTokens
			if result.CacheCreation != nil {
				tu.CacheCreationInputTokens += result.CacheCreation.Ephemeral5mInputTokens +
					result.CacheCreation.Ephemeral1hInputTokens
			}
		}
	}

	// Costs by model, joined on the model identifier. Amounts arrive as
	// decimal strings in cents.
	modelCosts := make(map[string]float64)
	for _, bucket := range costReport.Data {
		for _, result := range bucket.Results {
			if result.Model == "" || result.Amount == "" {
				continue
			}
			if cents, err := strconv.ParseFloat(result.Amount, 64); err == nil {
				modelCosts[result.Model] += cents / 100.0
			}
		}
	}

	var total model.TokenUsage
	var totalCost float64
	byModel := make([]model.ModelUsage, 0, len(modelTokens))
	for name, tokens := range modelTokens {
		total.Add(*tokens)
		cost := modelCosts[name]
		totalCost += cost
		byModel = append(byModel, model.ModelUsage{
			Model:       name,
			DisplayName: config.ModelDisplayName(name),
			Tokens:      *tokens,
			CostUSD:     cost,
		})
	}
	sort.SliceStable(byModel, func(i, j int) bool {
		a := byModel[i].Tokens.InputTokens + byModel[i].Tokens.OutputTokens
		b := byModel[j].Tokens.InputTokens + byModel[j].Tokens.OutputTokens
		return a > b
	})

	var local supplementalData
	select {
	case local = <-localCh:
	case <-ctx.Done():
		return model.UsageStats{}, ctx.Err()
	}

	return model.UsageStats{
		TotalTokens:    total,
		TotalCostUSD:   totalCost,
		ByModel:        byModel,
		MessageCount:   local.messageCount,
		LastUpdated:    local.lastUpdated,
		Quota:          local.quota,
		ActiveSessions: local.activeSessions,
		DailyActivity:  local.daily,
		WeeklyActivity: local.weekly,
	}, nil
}
