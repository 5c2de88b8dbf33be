// Package source discovers, parses, and classifies Claude Code JSONL
// session logs.
package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// DataDirs returns the Claude data directories that exist on this machine.
// Both the current default and the legacy location are probed; missing
// directories are omitted, not an error.
func DataDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	candidates := []string{
		filepath.Join(home, ".config", "claude", "projects"),
		filepath.Join(home, ".claude", "projects"),
	}

	var dirs []string
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// CollectFiles walks the given root directories and returns every .jsonl
// file beneath them. When maxAge > 0, only files modified at or after
// now-maxAge are included. Unreadable entries are skipped. No ordering is
// guaranteed.
func CollectFiles(dirs []string, maxAge time.Duration) []string {
	var cutoff time.Time
	if maxAge > 0 {
		cutoff = time.Now().Add(-maxAge)
	}

	var files []string
	for _, dir := range dirs {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // intentionally skip unreadable entries
			}
			if d.IsDir() || filepath.Ext(path) != ".jsonl" {
				return nil
			}
			if !cutoff.IsZero() {
				info, err := d.Info()
				if err != nil {
					return nil
				}
				if info.ModTime().Before(cutoff) {
					return nil
				}
			}
			files = append(files, path)
			return nil
		})
	}
	return files
}
