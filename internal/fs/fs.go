// Package fs loads immutable directory snapshots and performs the move and
// replace operations behind drag-and-drop.
package fs

import (
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/finchapp/finch/internal/debug"
)

// BundleExt is the reserved extension marking a directory as an app bundle.
// Bundles are launched rather than navigated into.
const BundleExt = ".app"

// Entry describes one immediate child of a directory.
type Entry struct {
	Name     string
	Path     string
	IsDir    bool
	IsBundle bool
	Size     int64
	ModTime  time.Time
}

// Snapshot is one fully-materialized listing of a directory's immediate
// children. It is regenerated wholesale on every reload and never mutated.
type Snapshot struct {
	Dir     string
	Entries []Entry
	Taken   time.Time
}

// IsBundleName reports whether name carries the app-bundle extension.
func IsBundleName(name string) bool {
	return strings.HasSuffix(name, BundleExt) && len(name) > len(BundleExt)
}

// Load lists the immediate children of dir, excluding dotfiles, sorted with
// directories first and names byte-wise ascending within each group.
// An unreadable directory yields a *FilesystemError.
func Load(dir string) (Snapshot, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return Snapshot{}, &FilesystemError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return Snapshot{}, &FilesystemError{Path: dir, Err: errNotDir}
	}

	var entries []Entry
	var mu sync.Mutex

	conf := &fastwalk.Config{
		Follow: true, // Follow symlinks to get target info
	}

	dirLen := len(dir)

	walkErr := fastwalk.Walk(conf, dir, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			if fullPath == dir {
				return err
			}
			return nil // Skip unreadable children, continue walking
		}

		// Skip the root directory itself
		if fullPath == dir {
			return nil
		}

		// Only immediate children: anything with a separator past the root
		// is nested and is skipped without recursing.
		relStart := dirLen
		if relStart < len(fullPath) && (fullPath[relStart] == '/' || fullPath[relStart] == '\\') {
			relStart++
		}
		rel := fullPath[relStart:]
		if strings.ContainsAny(rel, "/\\") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		info, err := fastwalk.StatDirEntry(fullPath, d)
		if err != nil {
			// Lstat fallback for broken symlinks
			info, err = os.Lstat(fullPath)
			if err != nil {
				debug.Log(debug.FS, "Load: skipping %q: stat error: %v", name, err)
				return nil
			}
		}

		isDir := info.IsDir()

		mu.Lock()
		entries = append(entries, Entry{
			Name:     name,
			Path:     fullPath,
			IsDir:    isDir,
			IsBundle: isDir && IsBundleName(name),
			Size:     info.Size(),
			ModTime:  info.ModTime(),
		})
		mu.Unlock()

		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	})

	if walkErr != nil {
		return Snapshot{}, &FilesystemError{Path: dir, Err: walkErr}
	}

	sortEntries(entries)

	debug.Log(debug.FS, "Load: %q -> %d entries", dir, len(entries))
	return Snapshot{Dir: dir, Entries: entries, Taken: time.Now()}, nil
}

// sortEntries orders directories before files, then names ascending.
// The comparison is byte-wise, so "Apple.txt" sorts before "apple.txt".
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
}
