package ui

import (
	"io"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
)

// ClickAndDraggable handles both click and drag gestures on the same area.
// gesture.Drag only activates after a small movement threshold, so a press
// that releases in place reports a click while a press that moves becomes a
// drag with a floating shadow. A gesture that turned into a drag never also
// reports a click.
type ClickAndDraggable struct {
	// Type is the MIME type offered for drag-and-drop transfers
	Type string

	click gesture.Click
	drag  gesture.Drag

	clickPos f32.Point // Where the press landed
	dragPos  f32.Point // Current offset from clickPos

	pid         pointer.ID
	dragStarted bool
}

// Dragging reports whether a drag is in progress.
func (c *ClickAndDraggable) Dragging() bool {
	return c.drag.Dragging()
}

// Hovered reports whether a pointer is inside the area.
func (c *ClickAndDraggable) Hovered() bool {
	return c.click.Hovered()
}

// Pos returns the current drag offset relative to the press position.
func (c *ClickAndDraggable) Pos() f32.Point {
	return c.dragPos
}

// Update reports a pending transfer.RequestEvent, meaning a drop landed on
// a target and the target wants the drag data. Call after Layout.
func (c *ClickAndDraggable) Update(gtx layout.Context) (mime string, requested bool) {
	for {
		ev, ok := gtx.Event(transfer.SourceFilter{Target: c, Type: c.Type})
		if !ok {
			break
		}
		if e, ok := ev.(transfer.RequestEvent); ok {
			return e.Type, true
		}
	}
	return "", false
}

// Offer hands the drag data to the transfer system.
func (c *ClickAndDraggable) Offer(gtx layout.Context, mime string, data io.ReadCloser) {
	gtx.Execute(transfer.OfferCmd{Tag: c, Type: mime, Data: data})
}

// Layout renders w and processes gestures. drag, when non-nil, is drawn at
// the pointer offset while a drag is active. The returned flag is true when
// the area was clicked without starting a drag.
func (c *ClickAndDraggable) Layout(gtx layout.Context, w, drag layout.Widget) (layout.Dimensions, bool) {
	if !gtx.Enabled() {
		return w(gtx), false
	}

	clicked := false

	// Events arrive against the previous frame's hit areas, so process
	// before laying out.
	for {
		e, ok := c.click.Update(gtx.Source)
		if !ok {
			break
		}
		switch e.Kind {
		case gesture.KindClick:
			if !c.dragStarted {
				clicked = true
			}
		case gesture.KindCancel:
			c.dragStarted = false
		}
	}

	for {
		e, ok := c.drag.Update(gtx.Metric, gtx.Source, gesture.Both)
		if !ok {
			break
		}
		switch e.Kind {
		case pointer.Press:
			c.clickPos = e.Position
			c.dragPos = f32.Point{}
			c.pid = e.PointerID
			c.dragStarted = false
		case pointer.Drag:
			if e.PointerID == c.pid {
				c.dragStarted = true
				c.dragPos = e.Position.Sub(c.clickPos)
			}
		case pointer.Release, pointer.Cancel:
			c.dragStarted = false
		}
	}

	dims := w(gtx)

	// Register the hit area for next frame's events
	defer clip.Rect{Max: dims.Size}.Push(gtx.Ops).Pop()
	c.click.Add(gtx.Ops)
	c.drag.Add(gtx.Ops)
	event.Op(gtx.Ops, c)

	// Drag shadow follows the pointer
	if drag != nil && c.drag.Pressed() && c.dragStarted {
		rec := op.Record(gtx.Ops)
		op.Offset(c.dragPos.Round()).Add(gtx.Ops)
		drag(gtx)
		op.Defer(gtx.Ops, rec.Stop())
	}

	return dims, clicked
}
