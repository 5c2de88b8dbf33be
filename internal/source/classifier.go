package source

import (
	"bytes"
	"encoding/json"
)

// userTypeKey is a cheap precheck so non-user lines skip JSON decoding
// entirely. A nested false positive just falls through to the full parse.
var userTypeKey = []byte(`"user"`)

// UserPromptTimestamp returns the entry's timestamp if the line is a
// genuine user-authored prompt: a "user"-kind entry whose message content
// is a plain string, or a block list containing at least one "text" block.
// Entries composed solely of tool-result blocks are synthetic echoes of
// tool output and return false, as do malformed or non-user lines.
func UserPromptTimestamp(line []byte) (string, bool) {
	if !bytes.Contains(line, userTypeKey) {
		return "", false
	}

	var entry rawEntry
	if err := json.Unmarshal(line, &entry); err != nil {
		return "", false
	}
	if entry.Type != "user" || entry.Message == nil || len(entry.Message.Content) == 0 {
		return "", false
	}
	if !isAuthoredContent(entry.Message.Content) {
		return "", false
	}
	if entry.Timestamp == "" {
		return "", false
	}
	return entry.Timestamp, true
}

// isAuthoredContent reports whether raw message content represents typed
// text rather than tool results.
func isAuthoredContent(content json.RawMessage) bool {
	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return true
	}

	var blocks []rawContentBlock
	if err := json.Unmarshal(content, &blocks); err != nil {
		return false
	}
	for _, b := range blocks {
		if b.Type == "text" {
			return true
		}
	}
	return false
}
