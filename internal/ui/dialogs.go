package ui

import (
	"fmt"
	"image"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/dustin/go-humanize"
)

// layoutConflictDialog draws the replace confirmation modal. The backdrop
// swallows pointer input so the grid underneath stays inert while the user
// decides.
func (r *Renderer) layoutConflictDialog(gtx layout.Context, state *State) UIEvent {
	var eventOut UIEvent

	c := &state.Conflict

	// Backdrop
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, colBackdrop)

	if r.replaceBtn.Clicked(gtx) {
		eventOut = UIEvent{Action: ActionConfirmReplace}
	}
	if r.cancelBtn.Clicked(gtx) {
		eventOut = UIEvent{Action: ActionCancelReplace}
	}

	layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(420))

		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				rr := gtx.Dp(8)
				defer clip.RRect{
					Rect: image.Rectangle{Max: gtx.Constraints.Min},
					NE:   rr, NW: rr, SE: rr, SW: rr,
				}.Push(gtx.Ops).Pop()
				paint.Fill(gtx.Ops, colWhite)
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(20)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							title := material.H6(r.Theme, fmt.Sprintf("Replace %q?", c.SourceName))
							title.Color = colBlack
							return title.Layout(gtx)
						}),
						layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							kind := "An item"
							if c.IsDir {
								kind = "A folder"
							}
							msg := fmt.Sprintf(
								"%s with the same name already exists here (%s, modified %s). Replacing it cannot be undone.",
								kind,
								humanize.Bytes(uint64(c.DestSize)),
								humanize.Time(c.DestTime))
							body := material.Body2(r.Theme, msg)
							body.Color = colGray
							body.Alignment = text.Start
							return body.Layout(gtx)
						}),
						layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceStart}.Layout(gtx,
								layout.Rigid(func(gtx layout.Context) layout.Dimensions {
									btn := material.Button(r.Theme, &r.cancelBtn, "Cancel")
									btn.Background = colGray
									return btn.Layout(gtx)
								}),
								layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
								layout.Rigid(func(gtx layout.Context) layout.Dimensions {
									btn := material.Button(r.Theme, &r.replaceBtn, "Replace")
									btn.Background = colDanger
									return btn.Layout(gtx)
								}),
							)
						}),
					)
				})
			},
		)
	})

	return eventOut
}
