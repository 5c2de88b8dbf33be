package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

type todoItem struct {
	Status string `json:"status"`
}

// PendingTodoCount reads the todo file for a session and returns the
// number of items not yet completed. Both todo directory locations are
// probed; any read or decode failure yields zero.
func PendingTodoCount(sessionID string) int {
	if sessionID == "" {
		return 0
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return 0
	}

	dirs := []string{
		filepath.Join(home, ".claude", "todos"),
		filepath.Join(home, ".config", "claude", "todos"),
	}

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if !strings.HasPrefix(name, sessionID) || !strings.HasSuffix(name, ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				continue
			}
			var todos []todoItem
			if err := json.Unmarshal(data, &todos); err != nil {
				continue
			}
			pending := 0
			for _, t := range todos {
				if t.Status != "completed" {
					pending++
				}
			}
			return pending
		}
	}
	return 0
}
