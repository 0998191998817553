package mirror

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherDeliversSettledContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("start"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	// Unrelated files in the directory are ignored.
	_ = os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644)

	for _, s := range []string{"one", "two", "three"} {
		if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case content := <-w.Content():
			if content == "three" {
				if w.Stats().Deliveries == 0 {
					t.Error("expected deliveries to be counted")
				}
				return
			}
		case err := <-w.Errors():
			t.Fatalf("watch error: %v", err)
		case <-deadline:
			t.Fatal("timed out waiting for content")
		}
	}
}

func TestWatcherMissingFile(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing.txt")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	_ = os.WriteFile(path, nil, 0o644)

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, ok := <-w.Content(); ok {
		t.Error("content channel should be closed")
	}
}
