// Package watch delivers debounced directory-change notifications through
// per-path subscriptions backed by a single fsnotify watcher.
package watch

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/finchapp/finch/internal/debug"
)

// ErrWatchSetup marks a failure to arm a watch on a directory. Callers can
// degrade to manual refresh instead of silently losing live updates.
var ErrWatchSetup = errors.New("watch setup failed")

const defaultDebounce = 200 * time.Millisecond

// Service multiplexes one fsnotify watcher across any number of
// subscriptions. Each subscribed directory gets at most one notification per
// debounce window, regardless of how many children changed.
type Service struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu   sync.Mutex
	subs map[string][]*Subscription // watched dir -> active subscriptions

	done chan struct{}
}

// Subscription is one view's claim on change notifications for a directory.
type Subscription struct {
	svc  *Service
	path string
	ch   chan struct{}

	closeOnce sync.Once
}

// NewService creates the shared watcher and starts its event loop.
func NewService(debounce time.Duration) (*Service, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatchSetup, err)
	}

	if debounce <= 0 {
		debounce = defaultDebounce
	}

	s := &Service{
		watcher:  w,
		debounce: debounce,
		subs:     make(map[string][]*Subscription),
		done:     make(chan struct{}),
	}

	go s.run()
	return s, nil
}

// Subscribe arms a watch on path and returns a subscription whose Events
// channel receives one value per debounced burst of write-class changes to
// the directory's direct children. A setup failure is returned, wrapped in
// ErrWatchSetup, rather than swallowed.
func (s *Service) Subscribe(path string) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.subs[path]) == 0 {
		if err := s.watcher.Add(path); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrWatchSetup, path, err)
		}
		debug.Log(debug.WATCH, "Now watching directory: %s", path)
	}

	sub := &Subscription{
		svc:  s,
		path: path,
		ch:   make(chan struct{}, 1),
	}
	s.subs[path] = append(s.subs[path], sub)
	return sub, nil
}

// Events returns the notification channel. Close closes it, so ranging over
// it ends when the subscription is released.
func (sub *Subscription) Events() <-chan struct{} {
	return sub.ch
}

// Path returns the watched directory.
func (sub *Subscription) Path() string {
	return sub.path
}

// Close stops delivery and releases the underlying watch when this was the
// last subscription on the path. Safe to call more than once.
func (sub *Subscription) Close() {
	sub.closeOnce.Do(func() {
		s := sub.svc
		s.mu.Lock()
		defer s.mu.Unlock()

		remaining := s.subs[sub.path][:0]
		for _, other := range s.subs[sub.path] {
			if other != sub {
				remaining = append(remaining, other)
			}
		}
		if len(remaining) == 0 {
			delete(s.subs, sub.path)
			// Removal errors are ignored; the path may already be gone.
			if err := s.watcher.Remove(sub.path); err != nil {
				debug.Log(debug.WATCH, "Error unwatching %s: %v", sub.path, err)
			}
			debug.Log(debug.WATCH, "Stopped watching directory: %s", sub.path)
		} else {
			s.subs[sub.path] = remaining
		}
		// Safe under s.mu: notify sends while holding the same lock.
		close(sub.ch)
	})
}

// Close shuts down the service and the underlying watcher.
func (s *Service) Close() error {
	close(s.done)
	return s.watcher.Close()
}

// run processes filesystem events with per-directory debouncing.
func (s *Service) run() {
	lastEvent := make(map[string]time.Time)
	pending := make(map[string]bool)
	ticker := time.NewTicker(s.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Write) {
				continue
			}

			// fsnotify reports the changed child's full path; map it back
			// to the watched directory.
			parentDir := filepath.Dir(event.Name)

			s.mu.Lock()
			if len(s.subs[parentDir]) > 0 {
				lastEvent[parentDir] = time.Now()
				pending[parentDir] = true
				debug.Log(debug.WATCH, "Event: %s on %s (parent: %s)", event.Op, event.Name, parentDir)
			} else if len(s.subs[event.Name]) > 0 {
				// The watched directory itself changed (e.g. permissions)
				lastEvent[event.Name] = time.Now()
				pending[event.Name] = true
				debug.Log(debug.WATCH, "Event: %s on watched dir %s", event.Op, event.Name)
			}
			s.mu.Unlock()

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			debug.Log(debug.WATCH, "Watcher error: %v", err)

		case <-ticker.C:
			now := time.Now()
			for dir := range pending {
				if now.Sub(lastEvent[dir]) < s.debounce {
					continue
				}
				delete(pending, dir)
				delete(lastEvent, dir)
				s.notify(dir)
			}
		}
	}
}

func (s *Service) notify(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subs[dir] {
		select {
		case sub.ch <- struct{}{}:
			debug.Log(debug.WATCH, "Change notification: %s", dir)
		default:
			// Subscriber already has one queued; a reload is coming anyway.
		}
	}
}
