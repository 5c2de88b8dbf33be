package source

import "encoding/json"

// rawEntry is one JSONL line in a Claude Code session file. Extra fields
// are ignored by the decoder.
type rawEntry struct {
	Type      string      `json:"type"`
	Timestamp string      `json:"timestamp,omitempty"`
	SessionID string      `json:"sessionId,omitempty"`
	Cwd       string      `json:"cwd,omitempty"`
	Message   *rawMessage `json:"message,omitempty"`
}

// rawMessage is the message envelope. Content is kept raw: for assistant
// entries it is ignored, for user entries it is either a plain string or
// a list of content blocks.
type rawMessage struct {
	Model   string          `json:"model,omitempty"`
	Usage   *rawUsage       `json:"usage,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

// rawUsage holds token counts from the API response. Missing counters
// decode as zero.
type rawUsage struct {
	InputTokens              uint64 `json:"input_tokens"`
	OutputTokens             uint64 `json:"output_tokens"`
	CacheCreationInputTokens uint64 `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     uint64 `json:"cache_read_input_tokens"`
}

// rawContentBlock is one element of a block-list message content.
type rawContentBlock struct {
	Type string `json:"type"`
}
