package ui

import (
	"image"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// Renderer draws one folder window. Each window owns its own Renderer; none
// of this state is shared.
type Renderer struct {
	Theme     *material.Theme
	listState layout.List
	toast     Toast

	bundleIcons *BundleIconCache

	// Drag bookkeeping, valid within a frame and across frames of one drag
	dragSourcePath string
	dropTargetPath string
	dragPos        image.Point // Grid-local pointer position during a drag

	bgDropTag struct{} // Drop target for the empty space between cells

	replaceBtn widget.Clickable
	cancelBtn  widget.Clickable
}

func NewRenderer(invalidate func()) *Renderer {
	r := &Renderer{
		Theme:       material.NewTheme(),
		bundleIcons: NewBundleIconCache(invalidate),
	}
	r.listState.Axis = layout.Vertical
	return r
}

// Stop releases the background workers owned by the renderer. Call when
// the window closes; the renderer must not be used afterwards.
func (r *Renderer) Stop() {
	r.bundleIcons.Stop()
}

// ShowError surfaces a failure as a transient toast.
func (r *Renderer) ShowError(message string) {
	r.toast.Show(message, ToastError)
}

// Layout draws the full window and returns the frame's user intent, if any.
func (r *Renderer) Layout(gtx layout.Context, state *State) UIEvent {
	var eventOut UIEvent

	paint.Fill(gtx.Ops, colWhite)

	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.layoutHeader(gtx, state)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return r.layoutGrid(gtx, state, &eventOut)
		}),
	)

	if state.Conflict.Active {
		if evt := r.layoutConflictDialog(gtx, state); evt.Action != ActionNone {
			eventOut = evt
		}
	}

	r.layoutToast(gtx)

	return eventOut
}

// layoutHeader draws the folder path bar across the top of the window.
func (r *Renderer) layoutHeader(gtx layout.Context, state *State) layout.Dimensions {
	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			defer clip.Rect{Max: gtx.Constraints.Min}.Push(gtx.Ops).Pop()
			paint.Fill(gtx.Ops, colAccent)
			return layout.Dimensions{Size: gtx.Constraints.Min}
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body1(r.Theme, state.Dir)
				lbl.Color = colWhite
				lbl.Font.Weight = font.SemiBold
				lbl.MaxLines = 1
				lbl.Alignment = text.Start
				return lbl.Layout(gtx)
			})
		},
	)
}
