package app

import (
	"errors"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/finchapp/finch/internal/debug"
	"github.com/finchapp/finch/internal/fs"
	"github.com/finchapp/finch/internal/store"
	"github.com/finchapp/finch/internal/ui"
	"github.com/finchapp/finch/internal/watch"
)

// View is one folder window. Every window gets its own snapshot, renderer,
// mover and watch subscription; sibling windows never share view state.
type View struct {
	app    *Application
	window *app.Window
	ui     *ui.Renderer
	mover  *Mover
	state  ui.State
	dir    string

	sub *watch.Subscription

	// Posted functions run on the event-loop goroutine at the next frame
	updates chan func()

	lastSize store.Placement
}

func newView(a *Application, dir string) *View {
	w := new(app.Window)
	v := &View{
		app:     a,
		window:  w,
		mover:   NewMover(),
		dir:     dir,
		updates: make(chan func(), 16),
	}
	v.ui = ui.NewRenderer(w.Invalidate)
	return v
}

// post schedules f on the view's event loop and wakes the window.
func (v *View) post(f func()) {
	select {
	case v.updates <- f:
		v.window.Invalidate()
	default:
		debug.Log(debug.APP, "View %s: update queue full, dropping", v.dir)
	}
}

// Run drives the window until it is closed.
func (v *View) Run() error {
	v.window.Option(app.Title(filepath.Base(v.dir)))
	if p, ok := v.app.fetchPlacement(v.dir); ok {
		v.window.Option(app.Size(unit.Dp(p.Width), unit.Dp(p.Height)))
	}

	v.reload()
	v.app.recordVisit(v.dir)
	v.subscribe()

	var ops op.Ops
	for {
		switch e := v.window.Event().(type) {
		case app.DestroyEvent:
			v.shutdown()
			return e.Err

		case app.StageEvent:
			if e.Stage == app.StageRunning {
				// Re-arm the watch and catch up on changes that landed
				// while the window was hidden
				v.subscribe()
				v.reload()
			} else {
				v.unsubscribe()
			}

		case app.FrameEvent:
			for done := false; !done; {
				select {
				case f := <-v.updates:
					f()
				default:
					done = true
				}
			}

			gtx := app.NewContext(&ops, e)
			evt := v.ui.Layout(gtx, &v.state)
			v.handleUIEvent(evt)

			v.lastSize = store.Placement{
				Width:  int(e.Metric.PxToDp(e.Size.X)),
				Height: int(e.Metric.PxToDp(e.Size.Y)),
			}
			e.Frame(gtx.Ops)
		}
	}
}

// subscribe arms the directory watch and starts the delivery goroutine. It
// is a no-op when already subscribed or when the watcher is unavailable.
func (v *View) subscribe() {
	if v.sub != nil || v.app.watch == nil {
		return
	}
	sub, err := v.app.watch.Subscribe(v.dir)
	if err != nil {
		debug.Log(debug.APP, "View %s: %v", v.dir, err)
		v.ui.ShowError("Live updates unavailable for this folder")
		return
	}
	v.sub = sub
	go func() {
		for range sub.Events() {
			v.post(v.reload)
		}
	}()
}

func (v *View) unsubscribe() {
	if v.sub == nil {
		return
	}
	v.sub.Close()
	v.sub = nil
}

func (v *View) shutdown() {
	v.unsubscribe()
	v.ui.Stop()
	if v.lastSize.Width > 0 {
		v.app.savePlacement(v.dir, v.lastSize)
	}
	debug.Log(debug.APP, "View closed: %s", v.dir)
}

func (v *View) handleUIEvent(evt ui.UIEvent) {
	switch evt.Action {
	case ui.ActionOpenFile:
		if err := platformOpen(evt.Path); err != nil {
			openErr := &OpenError{Path: evt.Path, Err: err}
			debug.Log(debug.APP, "%v", openErr)
			v.ui.ShowError("Could not open " + filepath.Base(evt.Path))
		}

	case ui.ActionOpenFolder:
		v.app.OpenWindow(evt.Path)

	case ui.ActionLaunchBundle:
		if err := platformLaunch(evt.Path); err != nil {
			openErr := &OpenError{Path: evt.Path, Err: err}
			debug.Log(debug.APP, "%v", openErr)
			v.ui.ShowError("Could not launch " + filepath.Base(evt.Path))
		}

	case ui.ActionMove:
		v.handleDrop(evt.Path, evt.DestDir)

	case ui.ActionConfirmReplace:
		pending := v.mover.Pending()
		v.state.Conflict = ui.ConflictState{}
		if err := v.mover.Confirm(); err != nil {
			debug.Log(debug.APP, "Replace failed: %v", err)
			v.ui.ShowError("Could not replace " + filepath.Base(pending.Dest))
		}
		v.reload()

	case ui.ActionCancelReplace:
		v.state.Conflict = ui.ConflictState{}
		v.mover.Cancel()
	}
}

func (v *View) handleDrop(source, destDir string) {
	outcome, err := v.mover.Drop(source, destDir)
	if err != nil {
		switch {
		case errors.Is(err, ErrMoveInFlight):
			v.ui.ShowError("Finish the current move first")
		case errors.Is(err, ErrMoveIntoSelf):
			v.ui.ShowError("Cannot move a folder into itself")
		default:
			debug.Log(debug.APP, "Move failed: %v", err)
			v.ui.ShowError("Could not move " + filepath.Base(source))
		}
		return
	}

	switch outcome {
	case OutcomeMoved:
		v.reload()
	case OutcomeNeedsConfirm:
		pending := v.mover.Pending()
		conflict := ui.ConflictState{
			Active:     true,
			SourceName: filepath.Base(pending.Source),
		}
		if info, err := os.Stat(pending.Source); err == nil {
			conflict.SourceSize = info.Size()
			conflict.IsDir = info.IsDir()
		}
		if info, err := os.Stat(pending.Dest); err == nil {
			conflict.DestSize = info.Size()
			conflict.DestTime = info.ModTime()
		}
		v.state.Conflict = conflict
		v.window.Invalidate()
	}
}

// reload regenerates the snapshot. On failure the previous listing stays on
// screen and the failure surfaces as a toast.
func (v *View) reload() {
	snap, err := fs.Load(v.dir)
	if err != nil {
		debug.Log(debug.APP, "Reload failed for %s: %v", v.dir, err)
		v.ui.ShowError("Could not read " + v.dir)
		v.window.Invalidate()
		return
	}
	v.state.FromSnapshot(snap)
	v.window.Invalidate()
}
