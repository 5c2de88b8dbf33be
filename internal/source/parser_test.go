package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeSession creates a temp JSONL file from the given lines and returns
// its path.
func writeSession(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "session.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseEntries_AssistantUsage(t *testing.T) {
	path := writeSession(t,
		`{"type":"assistant","timestamp":"2025-06-01T10:00:00Z","sessionId":"abc","cwd":"/tmp/proj","message":{"model":"claude-sonnet-4-20250514","usage":{"input_tokens":100,"output_tokens":50,"cache_creation_input_tokens":20,"cache_read_input_tokens":500}}}`,
	)

	entries, err := ParseEntries(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}

	e := entries[0]
	if e.Model != "claude-sonnet-4-20250514" {
		t.Errorf("Model = %q", e.Model)
	}
	if e.Tokens.InputTokens != 100 || e.Tokens.OutputTokens != 50 {
		t.Errorf("tokens = %+v", e.Tokens)
	}
	if e.Tokens.CacheCreationInputTokens != 20 || e.Tokens.CacheReadInputTokens != 500 {
		t.Errorf("cache tokens = %+v", e.Tokens)
	}
	if e.SessionID != "abc" || e.Cwd != "/tmp/proj" {
		t.Errorf("SessionID = %q, Cwd = %q", e.SessionID, e.Cwd)
	}
}

func TestParseEntries_StickyCwd(t *testing.T) {
	path := writeSession(t,
		`{"type":"user","timestamp":"2025-06-01T10:00:00Z","cwd":"/home/u/proj"}`,
		`{"type":"assistant","timestamp":"2025-06-01T10:00:05Z","message":{"model":"claude-sonnet-4-20250514","usage":{"input_tokens":10,"output_tokens":5}}}`,
		`{"type":"assistant","timestamp":"2025-06-01T10:01:00Z","cwd":"/home/u/other","message":{"model":"claude-sonnet-4-20250514","usage":{"input_tokens":10,"output_tokens":5}}}`,
		`{"type":"assistant","timestamp":"2025-06-01T10:02:00Z","message":{"model":"claude-sonnet-4-20250514","usage":{"input_tokens":10,"output_tokens":5}}}`,
	)

	entries, err := ParseEntries(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}

	if entries[0].Cwd != "/home/u/proj" {
		t.Errorf("entry 0 cwd = %q, want inherited /home/u/proj", entries[0].Cwd)
	}
	if entries[1].Cwd != "/home/u/other" {
		t.Errorf("entry 1 cwd = %q, want /home/u/other", entries[1].Cwd)
	}
	if entries[2].Cwd != "/home/u/other" {
		t.Errorf("entry 2 cwd = %q, want inherited /home/u/other", entries[2].Cwd)
	}
}

func TestParseEntries_SkipsIrrelevantLines(t *testing.T) {
	path := writeSession(t,
		`not json at all`,
		`{"type":"user","timestamp":"2025-06-01T10:00:00Z"}`,
		`{"type":"assistant","timestamp":"2025-06-01T10:00:05Z","message":{"model":"claude-sonnet-4-20250514"}}`,
		`{"type":"assistant","timestamp":"2025-06-01T10:00:06Z","message":{"usage":{"input_tokens":10}}}`,
		`{"type":"assistant","timestamp":"2025-06-01T10:00:07Z","message":{"model":"claude-sonnet-4-20250514","usage":{"input_tokens":10,"output_tokens":5}}}`,
		``,
	)

	entries, err := ParseEntries(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Missing usage, missing model, non-assistant, and junk lines all skip.
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(entries))
	}
}

func TestParseEntries_EmptyFile(t *testing.T) {
	path := writeSession(t)
	entries, err := ParseEntries(path)
	if err != nil {
		t.Fatalf("unexpected error on empty file: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestParseEntries_MissingFile(t *testing.T) {
	_, err := ParseEntries(filepath.Join(t.TempDir(), "nope.jsonl"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
