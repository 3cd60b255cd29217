// Package app wires the folder windows to the filesystem, the watcher and
// the store, and owns the process lifecycle.
package app

import (
	"log"
	"os"
	"sync"

	"gioui.org/app"

	"github.com/finchapp/finch/internal/debug"
	"github.com/finchapp/finch/internal/store"
	"github.com/finchapp/finch/internal/watch"
)

// Application holds the services shared by every window. Views themselves
// are independent; only the watcher, the store worker and the window count
// live here.
type Application struct {
	watch *watch.Service
	store *store.DB

	// Serializes request-response exchanges on the store's shared channels
	storeMu sync.Mutex

	windows sync.WaitGroup
}

// Main starts the first window and blocks running the display loop. It
// does not return; the process exits when the last window closes.
func Main(debugMode bool, startPath string) {
	if debugMode {
		log.Println("Starting Finch in DEBUG mode")
		debug.Log(debug.APP, "Debug logging active")
	}

	a := &Application{store: store.NewDB()}

	dbPath, err := store.DefaultPath()
	if err == nil {
		err = a.store.Open(dbPath)
	}
	if err != nil {
		// Recents and placements are conveniences; run without them
		log.Printf("Failed to open store: %v", err)
		a.store = nil
	} else {
		go a.store.Start()
	}

	if w, err := watch.NewService(0); err != nil {
		log.Printf("Failed to start watcher: %v", err)
	} else {
		a.watch = w
	}

	// Without an explicit path, reopen the most recent folder; fall back
	// to home for a first run.
	if startPath == "" {
		startPath = pickStartPath(a.fetchRecents())
	}
	if startPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			startPath = home
		} else {
			startPath, _ = os.Getwd()
		}
	}

	a.OpenWindow(startPath)

	go func() {
		a.windows.Wait()
		if a.watch != nil {
			a.watch.Close()
		}
		if a.store != nil {
			close(a.store.RequestChan)
			a.store.Close()
		}
		os.Exit(0)
	}()

	app.Main()
}

// OpenWindow spawns an independent view on dir. Opening the same folder
// twice yields two windows with their own state.
func (a *Application) OpenWindow(dir string) {
	a.windows.Add(1)
	go func() {
		defer a.windows.Done()
		v := newView(a, dir)
		if err := v.Run(); err != nil {
			log.Printf("Window error for %s: %v", dir, err)
		}
	}()
}

func (a *Application) recordVisit(dir string) {
	if a.store == nil {
		return
	}
	a.storeMu.Lock()
	defer a.storeMu.Unlock()
	a.store.RequestChan <- store.Request{Op: store.RecordVisit, Path: dir}
}

func (a *Application) savePlacement(dir string, p store.Placement) {
	if a.store == nil {
		return
	}
	a.storeMu.Lock()
	defer a.storeMu.Unlock()
	a.store.RequestChan <- store.Request{Op: store.SavePlacement, Path: dir, Placement: p}
}

// pickStartPath returns the first recent entry that is still a directory.
// Folders deleted or moved since their last visit are skipped.
func pickStartPath(recents []string) string {
	for _, dir := range recents {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}

func (a *Application) fetchRecents() []string {
	if a.store == nil {
		return nil
	}
	a.storeMu.Lock()
	defer a.storeMu.Unlock()

	a.store.RequestChan <- store.Request{Op: store.FetchRecents}
	resp := <-a.store.ResponseChan
	if resp.Err != nil {
		return nil
	}
	return resp.Recents
}

// fetchPlacement asks the store for a remembered window geometry. The lock
// covers the full exchange so concurrent windows cannot interleave replies.
func (a *Application) fetchPlacement(dir string) (store.Placement, bool) {
	if a.store == nil {
		return store.Placement{}, false
	}
	a.storeMu.Lock()
	defer a.storeMu.Unlock()

	a.store.RequestChan <- store.Request{Op: store.FetchPlacement, Path: dir}
	resp := <-a.store.ResponseChan
	if resp.Err != nil || !resp.Found {
		return store.Placement{}, false
	}
	return resp.Placement, true
}
