package daemon

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 500 * time.Millisecond

// watchDataDirs watches the session log trees and signals on changes,
// debounced so a burst of writes produces one notification. fsnotify
// does not watch recursively, so subdirectories are added as they are
// discovered.
func watchDataDirs(ctx context.Context, dirs []string, changes chan<- struct{}) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("ccwidget daemon: file watcher unavailable, polling only: %v", err)
		return
	}
	defer watcher.Close()

	watched := 0
	for _, dir := range dirs {
		watched += addRecursive(watcher, dir)
	}
	if watched == 0 {
		return
	}

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					addRecursive(watcher, ev.Name)
				}
			}
			if !relevantEvent(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerCh = timer.C
			} else {
				timer.Reset(watchDebounce)
			}
		case <-timerCh:
			timer = nil
			timerCh = nil
			select {
			case changes <- struct{}{}:
			default:
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("ccwidget daemon watcher: %v", err)
		}
	}
}

// relevantEvent reports whether the event can change computed usage.
func relevantEvent(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Remove) {
		return false
	}
	if strings.HasSuffix(ev.Name, ".jsonl") {
		return true
	}
	// Directory creates matter because new session logs land inside.
	info, err := os.Stat(ev.Name)
	return err == nil && info.IsDir()
}

// addRecursive registers dir and all subdirectories, returning the
// number of directories added.
func addRecursive(watcher *fsnotify.Watcher, dir string) int {
	added := 0
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err == nil {
			added++
		}
		return nil
	})
	return added
}
