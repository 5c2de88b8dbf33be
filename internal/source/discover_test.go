package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCollectFiles_FindsNestedJSONL(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "proj-a", "sub")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{
		filepath.Join(dir, "proj-a", "s1.jsonl"),
		filepath.Join(nested, "s2.jsonl"),
		filepath.Join(dir, "notes.txt"),
	} {
		if err := os.WriteFile(p, []byte("{}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files := CollectFiles([]string{dir}, 0)
	if len(files) != 2 {
		t.Errorf("len(files) = %d, want 2 (txt excluded)", len(files))
	}
}

func TestCollectFiles_MaxAgeFilter(t *testing.T) {
	dir := t.TempDir()

	fresh := filepath.Join(dir, "fresh.jsonl")
	stale := filepath.Join(dir, "stale.jsonl")
	for _, p := range []string{fresh, stale} {
		if err := os.WriteFile(p, []byte("{}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatal(err)
	}

	files := CollectFiles([]string{dir}, 24*time.Hour)
	if len(files) != 1 {
		t.Fatalf("len(files) = %d, want 1", len(files))
	}
	if files[0] != fresh {
		t.Errorf("files[0] = %q, want %q", files[0], fresh)
	}
}

func TestCollectFiles_MissingDir(t *testing.T) {
	files := CollectFiles([]string{filepath.Join(t.TempDir(), "absent")}, 0)
	if len(files) != 0 {
		t.Errorf("len(files) = %d, want 0 for missing dir", len(files))
	}
}

func TestCollectFiles_MultipleRoots(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	for _, p := range []string{
		filepath.Join(dirA, "a.jsonl"),
		filepath.Join(dirB, "b.jsonl"),
	} {
		if err := os.WriteFile(p, []byte("{}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files := CollectFiles([]string{dirA, dirB}, 0)
	if len(files) != 2 {
		t.Errorf("len(files) = %d, want 2", len(files))
	}
}
