// Package ui renders the folder window and reports user intent back to the
// view as events. It owns no filesystem state; everything it draws comes in
// through State.
package ui

import (
	"time"

	"github.com/finchapp/finch/internal/fs"
)

// PathMIME is the transfer type used for intra-window icon drags.
const PathMIME = "application/x-finch-path"

type UIAction int

const (
	ActionNone UIAction = iota
	ActionOpenFile
	ActionOpenFolder
	ActionLaunchBundle
	ActionMove
	ActionConfirmReplace
	ActionCancelReplace
)

// UIEvent is one user intent surfaced from a frame. At most one event is
// reported per frame.
type UIEvent struct {
	Action  UIAction
	Path    string // Item acted on; for ActionMove, the dragged source
	DestDir string // ActionMove only: directory receiving the drop
}

// UIEntry pairs a filesystem entry with its per-item widget state.
type UIEntry struct {
	fs.Entry
	Touch   ClickAndDraggable
	DropTag struct{} // Event tag for the drop-target area
}

// ConflictState describes the replace dialog while a collision is parked.
type ConflictState struct {
	Active     bool
	SourceName string
	SourceSize int64
	DestSize   int64
	DestTime   time.Time
	IsDir      bool
}

// State is everything the renderer needs to draw one frame.
type State struct {
	Dir      string
	Entries  []UIEntry
	Conflict ConflictState
}

// FromSnapshot rebuilds the entry list from a fresh directory snapshot.
// Widget state is rebuilt too; a reload drops any in-progress gesture.
func (s *State) FromSnapshot(snap fs.Snapshot) {
	s.Dir = snap.Dir
	s.Entries = make([]UIEntry, len(snap.Entries))
	for i, e := range snap.Entries {
		s.Entries[i] = UIEntry{Entry: e}
	}
}
