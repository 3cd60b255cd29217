package ui

import (
	"image"
	"image/color"
	"sync"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// ToastType indicates the severity of a toast message
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastError
)

// Toast is a temporary notification message
type Toast struct {
	Message   string
	Type      ToastType
	Visible   bool
	ExpiresAt time.Time
	mu        sync.Mutex
}

const toastDuration = 3 * time.Second

// Show displays a toast that auto-dismisses. Safe to call from any
// goroutine; the next frame picks it up.
func (t *Toast) Show(message string, toastType ToastType) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.Message = message
	t.Type = toastType
	t.Visible = true
	t.ExpiresAt = time.Now().Add(toastDuration)
}

func (r *Renderer) layoutToast(gtx layout.Context) layout.Dimensions {
	r.toast.mu.Lock()
	if r.toast.Visible && time.Now().After(r.toast.ExpiresAt) {
		r.toast.Visible = false
	}
	visible := r.toast.Visible
	message := r.toast.Message
	toastType := r.toast.Type
	expiresAt := r.toast.ExpiresAt
	r.toast.mu.Unlock()

	if !visible || message == "" {
		return layout.Dimensions{}
	}

	// Redraw once the toast expires
	if time.Until(expiresAt) > 0 {
		gtx.Execute(op.InvalidateCmd{At: expiresAt})
	}

	var bgColor, textColor color.NRGBA
	switch toastType {
	case ToastError:
		bgColor = color.NRGBA{R: 200, G: 50, B: 50, A: 240}
		textColor = colWhite
	default:
		bgColor = color.NRGBA{R: 60, G: 60, B: 60, A: 240}
		textColor = colWhite
	}

	return layout.S.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Bottom: unit.Dp(20), Left: unit.Dp(20), Right: unit.Dp(20)}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(unit.Dp(500)))

					macro := op.Record(gtx.Ops)
					textDims := layout.Inset{
						Top:    unit.Dp(12),
						Bottom: unit.Dp(12),
						Left:   unit.Dp(16),
						Right:  unit.Dp(16),
					}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						label := material.Body1(r.Theme, message)
						label.Color = textColor
						return label.Layout(gtx)
					})
					call := macro.Stop()

					rr := gtx.Dp(8)
					paint.FillShape(gtx.Ops, bgColor, clip.RRect{
						Rect: image.Rect(0, 0, textDims.Size.X, textDims.Size.Y),
						NE:   rr, NW: rr, SE: rr, SW: rr,
					}.Op(gtx.Ops))

					call.Add(gtx.Ops)
					return textDims
				})
			})
	})
}
