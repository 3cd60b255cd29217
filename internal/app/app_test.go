package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/finchapp/finch/internal/store"
)

func TestPickStartPath(t *testing.T) {
	existing := t.TempDir()
	missing := filepath.Join(existing, "gone")
	file := filepath.Join(existing, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Stale and non-directory entries are skipped in order
	if got := pickStartPath([]string{missing, file, existing}); got != existing {
		t.Errorf("pickStartPath = %q, want %q", got, existing)
	}
	if got := pickStartPath(nil); got != "" {
		t.Errorf("pickStartPath(nil) = %q, want empty", got)
	}
	if got := pickStartPath([]string{missing, file}); got != "" {
		t.Errorf("pickStartPath with no usable entry = %q, want empty", got)
	}
}

func TestFetchRecentsRoundTrip(t *testing.T) {
	d := store.NewDB()
	if err := d.Open(filepath.Join(t.TempDir(), "finch.db")); err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		close(d.RequestChan)
		d.Close()
	})
	go d.Start()

	a := &Application{store: d}
	a.recordVisit("/home/user/docs")

	recents := a.fetchRecents()
	if len(recents) != 1 || recents[0] != "/home/user/docs" {
		t.Errorf("recents = %v, want the recorded visit", recents)
	}
}
