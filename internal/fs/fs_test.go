package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrdersDirsFirstThenNames(t *testing.T) {
	tmpDir := t.TempDir()

	// Created deliberately out of order
	files := []string{"zebra.txt", "Apple.txt", "apple.txt"}
	dirs := []string{"music", "Books"}

	for _, f := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, f), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to create file %s: %v", f, err)
		}
	}
	for _, d := range dirs {
		if err := os.Mkdir(filepath.Join(tmpDir, d), 0o755); err != nil {
			t.Fatalf("failed to create dir %s: %v", d, err)
		}
	}

	snap, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := []string{"Books", "music", "Apple.txt", "apple.txt", "zebra.txt"}
	if len(snap.Entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(snap.Entries))
	}
	for i, name := range want {
		if snap.Entries[i].Name != name {
			t.Errorf("entry %d: expected %q, got %q", i, name, snap.Entries[i].Name)
		}
	}

	// Directories occupy the leading positions
	for i, e := range snap.Entries {
		if i < len(dirs) && !e.IsDir {
			t.Errorf("entry %d (%s) should be a directory", i, e.Name)
		}
		if i >= len(dirs) && e.IsDir {
			t.Errorf("entry %d (%s) should be a file", i, e.Name)
		}
	}
}

func TestLoadExcludesHiddenAndNested(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, ".hidden"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "sub", "nested.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(snap.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(snap.Entries))
	}
	if snap.Entries[0].Name != "sub" {
		t.Errorf("expected only %q, got %q", "sub", snap.Entries[0].Name)
	}
}

func TestLoadFinderExample(t *testing.T) {
	// /d containing Apple.txt, banana/, .hidden yields [banana/, Apple.txt]
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, "Apple.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "banana"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ".hidden"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(snap.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(snap.Entries))
	}
	if snap.Entries[0].Name != "banana" || !snap.Entries[0].IsDir {
		t.Errorf("entry 0: expected directory banana, got %+v", snap.Entries[0])
	}
	if snap.Entries[1].Name != "Apple.txt" || snap.Entries[1].IsDir {
		t.Errorf("entry 1: expected file Apple.txt, got %+v", snap.Entries[1])
	}
}

func TestLoadDetectsBundles(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.Mkdir(filepath.Join(tmpDir, "Editor.app"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "plain"), 0o755); err != nil {
		t.Fatal(err)
	}
	// A file carrying the bundle extension is not a bundle
	if err := os.WriteFile(filepath.Join(tmpDir, "notes.app"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	byName := make(map[string]Entry)
	for _, e := range snap.Entries {
		byName[e.Name] = e
	}

	if e := byName["Editor.app"]; !e.IsBundle || !e.IsDir {
		t.Errorf("Editor.app: expected directory bundle, got %+v", e)
	}
	if e := byName["plain"]; e.IsBundle {
		t.Errorf("plain: should not be a bundle")
	}
	if e := byName["notes.app"]; e.IsBundle {
		t.Errorf("notes.app: files are never bundles")
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "gone"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	var fsErr *FilesystemError
	if !errors.As(err, &fsErr) {
		t.Fatalf("expected *FilesystemError, got %T", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", fsErr.Err)
	}
}

func TestLoadOnFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var fsErr *FilesystemError
	if !errors.As(err, &fsErr) {
		t.Fatalf("expected *FilesystemError, got %v", err)
	}
}

func TestIsBundleName(t *testing.T) {
	testCases := []struct {
		name     string
		expected bool
	}{
		{"Editor.app", true},
		{"My Tool.app", true},
		{".app", false}, // Extension alone is not a bundle name
		{"Editor.App", false},
		{"Editor", false},
		{"app", false},
	}
	for _, tc := range testCases {
		if got := IsBundleName(tc.name); got != tc.expected {
			t.Errorf("IsBundleName(%q): expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}
