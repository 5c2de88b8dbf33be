package pipeline

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/ccwidget/internal/config"
)

func writeQuotaFile(t *testing.T, lines ...string) []string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "session.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return []string{path}
}

func userLine(ago time.Duration) string {
	ts := time.Now().UTC().Add(-ago).Format(time.RFC3339)
	return fmt.Sprintf(`{"type":"user","timestamp":"%s","message":{"content":"hello"}}`, ts)
}

func assistantLine(ago time.Duration, outputTokens int) string {
	ts := time.Now().UTC().Add(-ago).Format(time.RFC3339)
	return fmt.Sprintf(`{"type":"assistant","timestamp":"%s","message":{"model":"claude-sonnet-4-20250514","usage":{"input_tokens":10,"output_tokens":%d}}}`, ts, outputTokens)
}

func TestCountUserPromptsInWindow(t *testing.T) {
	files := writeQuotaFile(t,
		userLine(time.Hour),
		userLine(2*time.Hour),
		userLine(10*time.Hour), // outside 5h window
		assistantLine(time.Hour, 100),
		`{"type":"user","timestamp":"`+time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)+`","message":{"content":[{"type":"tool_result"}]}}`,
	)

	got := CountUserPromptsInWindow(files, 5)
	if got != 2 {
		t.Errorf("CountUserPromptsInWindow = %d, want 2", got)
	}
}

func TestCountWeightedUsageInWindow(t *testing.T) {
	files := writeQuotaFile(t,
		userLine(time.Hour),              // +1.0
		assistantLine(time.Hour, 5_000),  // +0.5
		assistantLine(time.Hour, 50_000), // capped at +2.0
		assistantLine(10*time.Hour, 5_000),
	)

	got := CountWeightedUsageInWindow(files, 5)
	if math.Abs(got-3.5) > 1e-9 {
		t.Errorf("CountWeightedUsageInWindow = %v, want 3.5", got)
	}
}

func TestLocalQuota(t *testing.T) {
	plan := config.PlanConfig{Name: "Max 5x", WindowLimit: 125, WeekLimitHours: 210}

	q := LocalQuota(plan, 50, 2100)
	if q.MessagesInWindow != 50 || q.WindowHours != 5 || q.EstimatedLimit != 125 {
		t.Errorf("quota = %+v", q)
	}
	if math.Abs(q.UsagePercent-40.0) > 1e-9 {
		t.Errorf("UsagePercent = %v, want 40", q.UsagePercent)
	}
	// Week estimated limit is 125 * 7 * 24 / 5 = 4200.
	if math.Abs(q.WeekUsagePercent-50.0) > 1e-9 {
		t.Errorf("WeekUsagePercent = %v, want 50", q.WeekUsagePercent)
	}
	if q.Plan != "Max 5x" || q.WeekLimitHours != 210 {
		t.Errorf("plan fields = %+v", q)
	}
}

func TestLocalQuota_Clamped(t *testing.T) {
	plan := config.PlanConfig{Name: "Pro", WindowLimit: 25, WeekLimitHours: 60}

	q := LocalQuota(plan, 1000, 1_000_000)
	if q.UsagePercent != 100 {
		t.Errorf("UsagePercent = %v, want clamped 100", q.UsagePercent)
	}
	if q.WeekUsagePercent != 100 {
		t.Errorf("WeekUsagePercent = %v, want clamped 100", q.WeekUsagePercent)
	}
}

func TestRemoteQuota(t *testing.T) {
	plan := config.PlanConfig{Name: "Max 5x", WindowLimit: 125}

	q := RemoteQuota(plan, 42, 250.0, 1295.0)
	if q.MessagesInWindow != 42 {
		t.Errorf("MessagesInWindow = %d, want 42", q.MessagesInWindow)
	}
	if q.EstimatedLimit != 500 {
		t.Errorf("EstimatedLimit = %d, want 500", q.EstimatedLimit)
	}
	if math.Abs(q.UsagePercent-50.0) > 1e-9 {
		t.Errorf("UsagePercent = %v, want 50", q.UsagePercent)
	}
	if math.Abs(q.WeekUsagePercent-50.0) > 1e-9 {
		t.Errorf("WeekUsagePercent = %v, want 50", q.WeekUsagePercent)
	}
}

func TestClampPercent(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-5, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{130, 100},
	}
	for _, tt := range tests {
		if got := clampPercent(tt.in); got != tt.want {
			t.Errorf("clampPercent(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
