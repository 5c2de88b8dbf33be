// Package model defines the domain types for ccwidget usage snapshots.
package model

// TokenUsage holds the four token counters reported per API call.
// The zero value is a valid all-zero usage.
type TokenUsage struct {
	InputTokens              uint64 `json:"input_tokens"`
	OutputTokens             uint64 `json:"output_tokens"`
	CacheCreationInputTokens uint64 `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     uint64 `json:"cache_read_input_tokens"`
}

// Add accumulates other into t.
func (t *TokenUsage) Add(other TokenUsage) {
	t.InputTokens += other.InputTokens
	t.OutputTokens += other.OutputTokens
	t.CacheCreationInputTokens += other.CacheCreationInputTokens
	t.CacheReadInputTokens += other.CacheReadInputTokens
}

// Total returns the sum of all four counters.
func (t TokenUsage) Total() uint64 {
	return t.InputTokens + t.OutputTokens + t.CacheCreationInputTokens + t.CacheReadInputTokens
}

// ParsedEntry is a validated assistant-turn record from one JSONL line.
// Timestamps are kept as RFC3339 strings; all producers emit UTC, so
// lexicographic order matches time order.
type ParsedEntry struct {
	Model     string
	Tokens    TokenUsage
	Timestamp string
	SessionID string
	Cwd       string
}

// ModelUsage is the per-model rollup within a snapshot.
type ModelUsage struct {
	Model       string     `json:"model"`
	DisplayName string     `json:"display_name"`
	Tokens      TokenUsage `json:"tokens"`
	CostUSD     float64    `json:"cost_usd"`
}

// QuotaInfo is the rolling-window quota estimate.
type QuotaInfo struct {
	MessagesInWindow int     `json:"messages_in_window"`
	WindowHours      int     `json:"window_hours"`
	EstimatedLimit   int     `json:"estimated_limit"`
	UsagePercent     float64 `json:"usage_percent"`
	Plan             string  `json:"plan"`
	WeekUsagePercent float64 `json:"week_usage_percent"`
	WeekLimitHours   int     `json:"week_limit_hours"`
}

// ActiveSession is one session with assistant activity in the trailing
// 24 hours. SessionID holds only the first 8 characters of the full id.
type ActiveSession struct {
	SessionID               string  `json:"session_id"`
	Project                 string  `json:"project"`
	Directory               string  `json:"directory"`
	FirstActivity           string  `json:"first_activity"`
	LastActivity            string  `json:"last_activity"`
	DurationMinutes         int     `json:"duration_minutes"`
	MessageCount            int     `json:"message_count"`
	TotalTokens             uint64  `json:"total_tokens"`
	CostUSD                 float64 `json:"cost_usd"`
	Model                   string  `json:"model"`
	ModelDisplayName        string  `json:"model_display_name"`
	ContextRemainingPercent float64 `json:"context_remaining_percent"`
	TodoCount               int     `json:"todo_count"`
}

// DailyActivity is the genuine user prompt count for one UTC calendar day.
// Days with zero prompts have no entry.
type DailyActivity struct {
	Date        string `json:"date"` // YYYY-MM-DD
	PromptCount int    `json:"prompt_count"`
}

// WeeklyActivity is a 7-day rollup of DailyActivity, anchored so the
// newest bucket ends on the current UTC day.
type WeeklyActivity struct {
	WeekStart   string `json:"week_start"` // YYYY-MM-DD
	PromptCount int    `json:"prompt_count"`
}

// UsageStats is the immutable aggregate snapshot returned to callers.
// It is fully rebuilt on every invocation.
type UsageStats struct {
	TotalTokens    TokenUsage       `json:"total_tokens"`
	TotalCostUSD   float64          `json:"total_cost_usd"`
	ByModel        []ModelUsage     `json:"by_model"`
	MessageCount   int              `json:"message_count"`
	LastUpdated    string           `json:"last_updated"`
	Quota          QuotaInfo        `json:"quota"`
	ActiveSessions []ActiveSession  `json:"active_sessions"`
	DailyActivity  []DailyActivity  `json:"daily_activity"`
	WeeklyActivity []WeeklyActivity `json:"weekly_activity"`
}
