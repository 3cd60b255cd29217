package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/finchapp/finch/internal/fs"
)

func TestDropMovesWithoutCollision(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.txt")
	destDir := filepath.Join(tmpDir, "sub")

	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(destDir, 0o755); err != nil {
		t.Fatal(err)
	}

	m := NewMover()
	outcome, err := m.Drop(src, destDir)
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if outcome != OutcomeMoved {
		t.Errorf("outcome = %d, want OutcomeMoved", outcome)
	}
	if fs.PathExists(src) {
		t.Error("source still exists")
	}
	if !fs.PathExists(filepath.Join(destDir, "a.txt")) {
		t.Error("item missing at destination")
	}
	if m.InFlight() {
		t.Error("mover still in flight after clean move")
	}
}

func TestDropIntoOwnParentIsNoop(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.txt")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewMover()
	outcome, err := m.Drop(src, tmpDir)
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if outcome != OutcomeSelfDrop {
		t.Errorf("outcome = %d, want OutcomeSelfDrop", outcome)
	}
	if !fs.PathExists(src) {
		t.Error("self-drop removed the item")
	}
}

func TestDropIntoOwnDescendantRejected(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "folder")
	inner := filepath.Join(src, "inner")
	if err := os.MkdirAll(inner, 0o755); err != nil {
		t.Fatal(err)
	}

	m := NewMover()
	_, err := m.Drop(src, inner)
	if !errors.Is(err, ErrMoveIntoSelf) {
		t.Fatalf("expected ErrMoveIntoSelf, got %v", err)
	}
	if !fs.PathExists(src) || !fs.PathExists(inner) {
		t.Error("rejected drop touched the filesystem")
	}
}

func TestDropCollisionParksUntilConfirm(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.txt")
	destDir := filepath.Join(tmpDir, "sub")
	dest := filepath.Join(destDir, "a.txt")

	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(destDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dest, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewMover()
	outcome, err := m.Drop(src, destDir)
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if outcome != OutcomeNeedsConfirm {
		t.Fatalf("outcome = %d, want OutcomeNeedsConfirm", outcome)
	}

	// Nothing moved yet
	data, _ := os.ReadFile(dest)
	if string(data) != "old" {
		t.Errorf("destination modified before confirmation: %q", data)
	}
	if !m.InFlight() {
		t.Fatal("mover not in flight with parked collision")
	}
	if p := m.Pending(); p.Source != src || p.Dest != dest {
		t.Errorf("pending = %+v", p)
	}

	// Second drop is rejected while the first is parked
	other := filepath.Join(tmpDir, "b.txt")
	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Drop(other, destDir); !errors.Is(err, ErrMoveInFlight) {
		t.Errorf("expected ErrMoveInFlight for concurrent drop, got %v", err)
	}

	if err := m.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	data, _ = os.ReadFile(dest)
	if string(data) != "new" {
		t.Errorf("destination after confirm = %q, want %q", data, "new")
	}
	if fs.PathExists(src) {
		t.Error("source survived confirmed replace")
	}
	if m.InFlight() {
		t.Error("mover still in flight after confirm")
	}
}

func TestCancelLeavesBothItems(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "a.txt")
	destDir := filepath.Join(tmpDir, "sub")
	dest := filepath.Join(destDir, "a.txt")

	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(destDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dest, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewMover()
	if _, err := m.Drop(src, destDir); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	m.Cancel()

	if !fs.PathExists(src) {
		t.Error("cancel removed the source")
	}
	data, _ := os.ReadFile(dest)
	if string(data) != "old" {
		t.Errorf("cancel modified the destination: %q", data)
	}
	if m.InFlight() {
		t.Error("mover still in flight after cancel")
	}

	// The mover accepts new drops again
	if _, err := m.Drop(src, destDir); err != nil {
		t.Errorf("Drop after cancel: %v", err)
	}
}

func TestConfirmWithoutPendingIsNoop(t *testing.T) {
	m := NewMover()
	if err := m.Confirm(); err != nil {
		t.Errorf("Confirm with nothing pending: %v", err)
	}
	m.Cancel()
}
