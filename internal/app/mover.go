package app

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"github.com/finchapp/finch/internal/debug"
	"github.com/finchapp/finch/internal/fs"
)

// ErrMoveInFlight is returned when a drop arrives while an earlier move is
// still unresolved. The new drop is rejected, never queued.
var ErrMoveInFlight = errors.New("a move is already in progress")

// ErrMoveIntoSelf is returned when a folder is dropped into itself or one of
// its descendants.
var ErrMoveIntoSelf = errors.New("cannot move a folder into itself")

// MoveState tracks where the single in-flight move stands.
type MoveState int

const (
	MoveIdle MoveState = iota
	MoveAwaitingConfirmation
)

// MoveOutcome is the immediate result of a drop.
type MoveOutcome int

const (
	// OutcomeSelfDrop means the item was already where it was dropped.
	// Nothing happened and nothing needs resolving.
	OutcomeSelfDrop MoveOutcome = iota
	// OutcomeMoved means the move completed with no collision.
	OutcomeMoved
	// OutcomeNeedsConfirm means the destination holds an item with the same
	// name. The move is parked until Confirm or Cancel.
	OutcomeNeedsConfirm
)

// PendingMove is a collision waiting on the user's decision.
type PendingMove struct {
	Source string // Full path of the dragged item
	Dest   string // Full path it would replace
}

// Mover serializes drag-and-drop moves. At most one move is unresolved at a
// time; a collision parks it until Confirm or Cancel.
type Mover struct {
	mu      sync.Mutex
	state   MoveState
	pending PendingMove
}

func NewMover() *Mover {
	return &Mover{}
}

// Drop attempts to move the item at source into destDir. A same-name
// collision does not touch the filesystem; it parks the move and reports
// OutcomeNeedsConfirm. While a collision is parked, further drops fail with
// ErrMoveInFlight.
func (m *Mover) Drop(source, destDir string) (MoveOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != MoveIdle {
		return 0, ErrMoveInFlight
	}

	dest := filepath.Join(destDir, filepath.Base(source))
	if dest == source {
		debug.Log(debug.APP, "Drop: %q into its own parent, no-op", source)
		return OutcomeSelfDrop, nil
	}
	if isAncestorOf(source, destDir) {
		return 0, ErrMoveIntoSelf
	}

	if fs.PathExists(dest) {
		m.state = MoveAwaitingConfirmation
		m.pending = PendingMove{Source: source, Dest: dest}
		debug.Log(debug.APP, "Drop: collision at %q, awaiting confirmation", dest)
		return OutcomeNeedsConfirm, nil
	}

	if err := fs.Move(source, dest); err != nil {
		return 0, err
	}
	debug.Log(debug.APP, "Drop: moved %q -> %q", source, dest)
	return OutcomeMoved, nil
}

// Confirm carries out the parked replace. The mover returns to idle whether
// the replace succeeds or fails; a failed replace is not retried.
func (m *Mover) Confirm() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != MoveAwaitingConfirmation {
		return nil
	}
	pending := m.pending
	m.state = MoveIdle
	m.pending = PendingMove{}

	if err := fs.Replace(pending.Source, pending.Dest); err != nil {
		return err
	}
	debug.Log(debug.APP, "Confirm: replaced %q with %q", pending.Dest, pending.Source)
	return nil
}

// Cancel abandons the parked move. Both items are left untouched.
func (m *Mover) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == MoveAwaitingConfirmation {
		debug.Log(debug.APP, "Cancel: abandoned move of %q", m.pending.Source)
	}
	m.state = MoveIdle
	m.pending = PendingMove{}
}

// InFlight reports whether a move is parked awaiting confirmation.
func (m *Mover) InFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state != MoveIdle
}

// Pending returns the parked move, valid only while InFlight.
func (m *Mover) Pending() PendingMove {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// isAncestorOf reports whether path contains other (or equals it).
func isAncestorOf(path, other string) bool {
	if path == other {
		return true
	}
	return strings.HasPrefix(other, path+string(filepath.Separator))
}
