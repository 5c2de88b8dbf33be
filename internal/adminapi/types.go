package adminapi

// CacheCreation is the cache-write token breakdown by TTL bucket.
type CacheCreation struct {
	Ephemeral1hInputTokens uint64 `json:"ephemeral_1h_input_tokens"`
	Ephemeral5mInputTokens uint64 `json:"ephemeral_5m_input_tokens"`
}

// UsageResult is one model's token counts within a usage report bucket.
type UsageResult struct {
	Model                string         `json:"model"`
	UncachedInputTokens  uint64         `json:"uncached_input_tokens"`
	OutputTokens         uint64         `json:"output_tokens"`
	CacheReadInputTokens uint64         `json:"cache_read_input_tokens"`
	CacheCreation        *CacheCreation `json:"cache_creation,omitempty"`
}

// UsageBucket is one time bucket of the usage report.
type UsageBucket struct {
	StartingAt string        `json:"starting_at"`
	EndingAt   string        `json:"ending_at"`
	Results    []UsageResult `json:"results"`
}

// UsageReportResponse is the paginated usage report payload. Only the
// first page is consumed; has_more is not followed.
type UsageReportResponse struct {
	Data     []UsageBucket `json:"data"`
	HasMore  bool          `json:"has_more"`
	NextPage string        `json:"next_page,omitempty"`
}

// CostResult is one cost line within a cost report bucket. Amount is a
// decimal string in hundredths of a currency unit (cents).
type CostResult struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Model    string `json:"model"`
	CostType string `json:"cost_type"`
}

// CostBucket is one time bucket of the cost report.
type CostBucket struct {
	StartingAt string       `json:"starting_at"`
	EndingAt   string       `json:"ending_at"`
	Results    []CostResult `json:"results"`
}

// CostReportResponse is the paginated cost report payload. Only the first
// page is consumed.
type CostReportResponse struct {
	Data     []CostBucket `json:"data"`
	HasMore  bool         `json:"has_more"`
	NextPage string       `json:"next_page,omitempty"`
}
