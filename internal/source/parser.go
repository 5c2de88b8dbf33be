package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"

	"github.com/theirongolddev/ccwidget/internal/model"
)

// ParseEntries reads a JSONL session file and returns every assistant-turn
// record carrying both a model and a usage block. Malformed or irrelevant
// lines are skipped; only failure to open or read the file itself is an
// error, and callers treat that as skip-this-file.
//
// The working directory is sticky: entries that omit cwd inherit it from
// the most recent line that specified one. The accumulator is local to one
// call, so state never leaks across files.
func ParseEntries(path string) ([]model.ParsedEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var (
		entries []model.ParsedEntry
		lastCwd string
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 256*1024), 2*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry rawEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}

		if entry.Cwd != "" {
			lastCwd = entry.Cwd
		}

		if entry.Type != "assistant" || entry.Message == nil {
			continue
		}
		msg := entry.Message
		if msg.Model == "" || msg.Usage == nil {
			continue
		}

		cwd := entry.Cwd
		if cwd == "" {
			cwd = lastCwd
		}

		entries = append(entries, model.ParsedEntry{
			Model: msg.Model,
			Tokens: model.TokenUsage{
				InputTokens:              msg.Usage.InputTokens,
				OutputTokens:             msg.Usage.OutputTokens,
				CacheCreationInputTokens: msg.Usage.CacheCreationInputTokens,
				CacheReadInputTokens:     msg.Usage.CacheReadInputTokens,
			},
			Timestamp: entry.Timestamp,
			SessionID: entry.SessionID,
			Cwd:       cwd,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
