package pipeline

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/theirongolddev/ccwidget/internal/config"
	"github.com/theirongolddev/ccwidget/internal/model"
	"github.com/theirongolddev/ccwidget/internal/source"
)

// Remote-augmented quota limits. These are weighted-score ceilings, not
// prompt counts, so they differ from the local-path plan limit. The two
// formulas are preserved as observed; they are not expected to agree.
const (
	remoteWindowLimit = 500
	remoteWeekLimit   = 2590
)

const quotaWindowHours = 5

// CountUserPromptsInWindow counts genuine user prompts across the given
// files whose timestamps fall within the trailing window.
func CountUserPromptsInWindow(files []string, hours int) int {
	windowStart := time.Now().Add(-time.Duration(hours) * time.Hour)
	count := 0

	scanLines(files, func(line []byte) {
		ts, ok := source.UserPromptTimestamp(line)
		if !ok {
			return
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil && !t.Before(windowStart) {
			count++
		}
	})
	return count
}

// weightedLine is the slice of an entry needed for weighted scoring.
type weightedLine struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Message   *struct {
		Usage *struct {
			OutputTokens float64 `json:"output_tokens"`
		} `json:"usage"`
	} `json:"message"`
}

// CountWeightedUsageInWindow computes a weighted usage score over the
// trailing window: each genuine user prompt contributes 1.0, and each
// assistant turn adds output volume at 1 point per 10K output tokens,
// capped at 2.0 per turn. The score approximates load better than a raw
// prompt count for heavy generation sessions.
func CountWeightedUsageInWindow(files []string, hours int) float64 {
	windowStart := time.Now().Add(-time.Duration(hours) * time.Hour)
	var score float64

	scanLines(files, func(line []byte) {
		if ts, ok := source.UserPromptTimestamp(line); ok {
			if t, err := time.Parse(time.RFC3339, ts); err == nil && !t.Before(windowStart) {
				score += 1.0
			}
			return
		}

		if !bytes.Contains(line, assistantTypeKey) {
			return
		}
		var entry weightedLine
		if err := json.Unmarshal(line, &entry); err != nil {
			return
		}
		if entry.Type != "assistant" || entry.Message == nil || entry.Message.Usage == nil {
			return
		}
		t, err := time.Parse(time.RFC3339, entry.Timestamp)
		if err != nil || t.Before(windowStart) {
			return
		}
		w := entry.Message.Usage.OutputTokens / 10_000.0
		if w > 2.0 {
			w = 2.0
		}
		score += w
	})
	return score
}

var assistantTypeKey = []byte(`"assistant"`)

// scanLines applies fn to every non-empty line of every readable file.
// Unreadable files are skipped.
func scanLines(files []string, fn func(line []byte)) {
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			continue
		}

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 256*1024), 2*1024*1024)
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			fn(line)
		}
		_ = f.Close()
	}
}

// LocalQuota builds the quota estimate from raw prompt counts against the
// configured plan limit.
func LocalQuota(plan config.PlanConfig, windowPrompts, weekPrompts int) model.QuotaInfo {
	weekEstimated := plan.WindowLimit * 7 * 24 / quotaWindowHours

	return model.QuotaInfo{
		MessagesInWindow: windowPrompts,
		WindowHours:      quotaWindowHours,
		EstimatedLimit:   plan.WindowLimit,
		UsagePercent:     clampPercent(float64(windowPrompts) / float64(plan.WindowLimit) * 100.0),
		Plan:             plan.Name,
		WeekUsagePercent: clampPercent(float64(weekPrompts) / float64(weekEstimated) * 100.0),
		WeekLimitHours:   plan.WeekLimitHours,
	}
}

// RemoteQuota builds the quota estimate from weighted usage scores against
// the fixed remote-path limits.
func RemoteQuota(plan config.PlanConfig, windowPrompts int, windowWeighted, weekWeighted float64) model.QuotaInfo {
	return model.QuotaInfo{
		MessagesInWindow: windowPrompts,
		WindowHours:      quotaWindowHours,
		EstimatedLimit:   remoteWindowLimit,
		UsagePercent:     clampPercent(windowWeighted / remoteWindowLimit * 100.0),
		Plan:             plan.Name,
		WeekUsagePercent: clampPercent(weekWeighted / remoteWeekLimit * 100.0),
		WeekLimitHours:   plan.WeekLimitHours,
	}
}

func clampPercent(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
