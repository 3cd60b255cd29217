package store

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d := NewDB()
	if err := d.Open(filepath.Join(t.TempDir(), "finch.db")); err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		close(d.RequestChan)
		d.Close()
	})
	go d.Start()
	return d
}

func TestRecentsOrderedByVisit(t *testing.T) {
	d := openTestDB(t)

	d.RequestChan <- Request{Op: RecordVisit, Path: "/home/user/docs"}
	d.RequestChan <- Request{Op: RecordVisit, Path: "/home/user/music"}
	d.RequestChan <- Request{Op: FetchRecents}

	resp := <-d.ResponseChan
	if resp.Err != nil {
		t.Fatalf("FetchRecents: %v", resp.Err)
	}
	if len(resp.Recents) != 2 {
		t.Fatalf("expected 2 recents, got %d", len(resp.Recents))
	}
}

func TestRecordVisitDeduplicates(t *testing.T) {
	d := openTestDB(t)

	d.RequestChan <- Request{Op: RecordVisit, Path: "/same"}
	d.RequestChan <- Request{Op: RecordVisit, Path: "/same"}
	d.RequestChan <- Request{Op: FetchRecents}

	resp := <-d.ResponseChan
	if resp.Err != nil {
		t.Fatalf("FetchRecents: %v", resp.Err)
	}
	if len(resp.Recents) != 1 {
		t.Errorf("expected 1 recent after repeat visits, got %d", len(resp.Recents))
	}
}

func TestPlacementRoundTrip(t *testing.T) {
	d := openTestDB(t)

	want := Placement{X: 40, Y: 60, Width: 800, Height: 600}
	d.RequestChan <- Request{Op: SavePlacement, Path: "/home/user", Placement: want}
	d.RequestChan <- Request{Op: FetchPlacement, Path: "/home/user"}

	resp := <-d.ResponseChan
	if resp.Err != nil {
		t.Fatalf("FetchPlacement: %v", resp.Err)
	}
	if !resp.Found {
		t.Fatal("placement not found after save")
	}
	if resp.Placement != want {
		t.Errorf("placement = %+v, want %+v", resp.Placement, want)
	}
}

func TestFetchPlacementMissing(t *testing.T) {
	d := openTestDB(t)

	d.RequestChan <- Request{Op: FetchPlacement, Path: "/never-seen"}
	resp := <-d.ResponseChan
	if resp.Err != nil {
		t.Fatalf("FetchPlacement: %v", resp.Err)
	}
	if resp.Found {
		t.Error("expected no placement for unseen path")
	}
}
