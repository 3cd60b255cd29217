package ui

import (
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/finchapp/finch/internal/fs"
	"github.com/finchapp/finch/internal/grid"
	"github.com/finchapp/finch/internal/icon"
)

const labelHeight = 30

func (r *Renderer) gridParams(gtx layout.Context) grid.Params {
	itemSize := gtx.Dp(96)
	return grid.Params{
		ViewWidth:  gtx.Constraints.Max.X,
		CellWidth:  itemSize,
		CellHeight: itemSize + labelHeight,
		Spacing:    gtx.Dp(8),
		Margin:     gtx.Dp(8),
	}
}

// layoutGrid draws the icon grid and reports click and drop intents.
func (r *Renderer) layoutGrid(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	params := r.gridParams(gtx)
	cols := params.Columns()
	if cols == 0 {
		return layout.Dimensions{Size: gtx.Constraints.Max}
	}

	numItems := len(state.Entries)
	rows := (numItems + cols - 1) / cols
	if rows < 1 {
		rows = 1
	}

	// The drop highlight follows the drag position from the previous frame.
	// Bare entries feed the pure geometry resolver.
	plain := make([]fs.Entry, numItems)
	for i := range state.Entries {
		plain[i] = state.Entries[i].Entry
	}

	anyDragging := false
	rowHeight := params.CellHeight + params.Spacing

	// A drop that misses every cell lands on the background and moves the
	// item into this window's own directory. Cells register their input
	// areas on top, so the background only sees drops between cells.
	var bgDrop *UIEvent
	for {
		ev, ok := gtx.Event(transfer.TargetFilter{Target: &r.bgDropTag, Type: PathMIME})
		if !ok {
			break
		}
		if e, ok := ev.(transfer.DataEvent); ok && e.Type == PathMIME {
			reader := e.Open()
			data, err := io.ReadAll(reader)
			reader.Close()
			source := strings.TrimSpace(string(data))
			if err == nil && source != "" {
				bgDrop = &UIEvent{Action: ActionMove, Path: source, DestDir: state.Dir}
			}
		}
	}

	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, &r.bgDropTag)

	dims := r.listState.Layout(gtx, rows, func(gtx layout.Context, rowIdx int) layout.Dimensions {
		startIdx := rowIdx * cols
		endIdx := startIdx + cols
		if endIdx > numItems {
			endIdx = numItems
		}

		for i := startIdx; i < endIdx; i++ {
			item := &state.Entries[i]
			rect := params.CellRect(i)

			if item.Touch.Dragging() {
				anyDragging = true
				pos := item.Touch.Pos().Round()
				r.dragSourcePath = item.Path
				r.dragPos = image.Pt(rect.Min.X+pos.X+params.CellWidth/2,
					rect.Min.Y+pos.Y+params.CellHeight/2)
			}

			// Cells are placed at absolute grid coordinates; the row's own
			// origin is its Y offset within the list.
			rec := op.Record(gtx.Ops)
			cellGtx := gtx
			cellGtx.Constraints = layout.Exact(image.Pt(params.CellWidth, params.CellHeight))
			r.layoutCell(cellGtx, state, item, eventOut)
			call := rec.Stop()

			trans := op.Offset(image.Pt(rect.Min.X, rect.Min.Y-rowIdx*rowHeight)).Push(gtx.Ops)
			call.Add(gtx.Ops)
			trans.Pop()
		}

		return layout.Dimensions{Size: image.Pt(gtx.Constraints.Max.X, rowHeight)}
	})

	// A cell-level drop or click wins over the background drop
	if bgDrop != nil && eventOut.Action == ActionNone {
		*eventOut = *bgDrop
	}

	if anyDragging {
		r.dropTargetPath = ""
		// Cell rects and the drag position are both in absolute grid
		// coordinates, so scrolling needs no correction here.
		if target := grid.ResolveTarget(r.dragPos, plain, params); target != nil {
			if target.Path != r.dragSourcePath && filepath.Dir(r.dragSourcePath) != target.Path {
				r.dropTargetPath = target.Path
			}
		}
		gtx.Execute(op.InvalidateCmd{})
	} else {
		r.dragSourcePath = ""
		r.dropTargetPath = ""
	}

	return dims
}

func (r *Renderer) layoutCell(gtx layout.Context, state *State, item *UIEntry, eventOut *UIEvent) layout.Dimensions {
	cellSize := gtx.Constraints.Max
	iconSize := cellSize.X - gtx.Dp(20)

	isDropTarget := r.dropTargetPath != "" && r.dropTargetPath == item.Path

	item.Touch.Type = PathMIME

	// Drop delivery: the transfer system routes the data to the target
	// under the pointer at release.
	var dropEvent *UIEvent
	if item.IsDir && !item.IsBundle {
		for {
			ev, ok := gtx.Event(transfer.TargetFilter{Target: &item.DropTag, Type: PathMIME})
			if !ok {
				break
			}
			if e, ok := ev.(transfer.DataEvent); ok && e.Type == PathMIME {
				reader := e.Open()
				data, err := io.ReadAll(reader)
				reader.Close()
				source := strings.TrimSpace(string(data))
				if err == nil && source != "" {
					dropEvent = &UIEvent{Action: ActionMove, Path: source, DestDir: item.Path}
				}
			}
		}
	}

	dims, clicked := item.Touch.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Stack{Alignment: layout.Center}.Layout(gtx,
				layout.Expanded(func(gtx layout.Context) layout.Dimensions {
					if isDropTarget {
						rr := gtx.Dp(4)
						paint.FillShape(gtx.Ops, colDropTarget,
							clip.RRect{
								Rect: image.Rect(0, 0, cellSize.X, cellSize.Y),
								NE:   rr, NW: rr, SE: rr, SW: rr,
							}.Op(gtx.Ops))
					}
					return layout.Dimensions{Size: cellSize}
				}),
				layout.Stacked(func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
								return r.drawEntryIcon(gtx, item, iconSize)
							})
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							gtx.Constraints.Max.X = cellSize.X
							gtx.Constraints.Min.X = cellSize.X
							return layout.Inset{Top: unit.Dp(4), Left: unit.Dp(2), Right: unit.Dp(2)}.Layout(gtx,
								func(gtx layout.Context) layout.Dimensions {
									lbl := material.Body2(r.Theme, item.Name)
									lbl.Alignment = text.Middle
									lbl.MaxLines = 2
									if item.IsDir {
										lbl.Color = colBlack
									} else {
										lbl.Color = colGray
									}
									return lbl.Layout(gtx)
								})
						}),
					)
				}),
			)
		},
		// Drag shadow: compact icon + name chip following the pointer
		func(gtx layout.Context) layout.Dimensions {
			dragHeight := gtx.Dp(36)
			dragWidth := gtx.Dp(160)

			cr := gtx.Dp(4)
			paint.FillShape(gtx.Ops, color.NRGBA{R: 200, G: 220, B: 255, A: 220},
				clip.RRect{
					Rect: image.Rect(0, 0, dragWidth, dragHeight),
					NE:   cr, NW: cr, SE: cr, SW: cr,
				}.Op(gtx.Ops))

			return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(r.Theme, item.Name)
				lbl.Color = colBlack
				lbl.MaxLines = 1
				return lbl.Layout(gtx)
			})
		},
	)

	if clicked {
		switch {
		case item.IsBundle:
			*eventOut = UIEvent{Action: ActionLaunchBundle, Path: item.Path}
		case item.IsDir:
			*eventOut = UIEvent{Action: ActionOpenFolder, Path: item.Path}
		default:
			*eventOut = UIEvent{Action: ActionOpenFile, Path: item.Path}
		}
	}

	// Register the drop area behind the touchable. PassOp lets pointer
	// events continue through to the gesture handlers underneath.
	if item.IsDir && !item.IsBundle {
		passStack := pointer.PassOp{}.Push(gtx.Ops)
		stack := clip.Rect{Max: dims.Size}.Push(gtx.Ops)
		event.Op(gtx.Ops, &item.DropTag)
		stack.Pop()
		passStack.Pop()
	}

	// A target requested the drag data; hand over the source path
	if mime, ok := item.Touch.Update(gtx); ok && mime == PathMIME {
		item.Touch.Offer(gtx, mime, io.NopCloser(strings.NewReader(item.Path)))
	}

	if dropEvent != nil {
		*eventOut = *dropEvent
	}

	return dims
}

func (r *Renderer) drawEntryIcon(gtx layout.Context, item *UIEntry, size int) layout.Dimensions {
	glyph := icon.Classify(item.Entry)
	switch glyph {
	case icon.GlyphBundle:
		if imgOp, ok := r.bundleIcons.Get(item.Path, size); ok {
			return drawImageIcon(gtx, imgOp, size)
		}
		drawFolderGlyph(gtx.Ops, size, colBundle, colBundle)
	case icon.GlyphFolder:
		drawFolderGlyph(gtx.Ops, size, colAccent, colDirBlue)
	default:
		badge := strings.ToUpper(strings.TrimPrefix(filepath.Ext(item.Name), "."))
		drawFileGlyph(gtx.Ops, size, glyph, badge)
	}
	return layout.Dimensions{Size: image.Pt(size, size)}
}

func drawImageIcon(gtx layout.Context, imgOp paint.ImageOp, size int) layout.Dimensions {
	defer clip.Rect{Max: image.Pt(size, size)}.Push(gtx.Ops).Pop()
	imgOp.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	return layout.Dimensions{Size: image.Pt(size, size)}
}

func drawFolderGlyph(ops *op.Ops, size int, innerColor, outerColor color.NRGBA) {
	s := float32(size)

	bodyY := int(s * 0.28)
	bodyH := int(s * 0.58)
	bodyW := int(s * 0.76)
	bodyX := int(s * 0.12)

	lightInner := color.NRGBA{
		R: uint8(min(255, int(innerColor.R)+180)),
		G: uint8(min(255, int(innerColor.G)+180)),
		B: uint8(min(255, int(innerColor.B)+180)),
		A: 255,
	}
	paint.FillShape(ops, lightInner, clip.Rect{
		Min: image.Pt(bodyX, bodyY),
		Max: image.Pt(bodyX+bodyW, bodyY+bodyH),
	}.Op())

	borderW := 2
	// Outline
	paint.FillShape(ops, outerColor, clip.Rect{
		Min: image.Pt(bodyX, bodyY),
		Max: image.Pt(bodyX+bodyW, bodyY+borderW),
	}.Op())
	paint.FillShape(ops, outerColor, clip.Rect{
		Min: image.Pt(bodyX, bodyY+bodyH-borderW),
		Max: image.Pt(bodyX+bodyW, bodyY+bodyH),
	}.Op())
	paint.FillShape(ops, outerColor, clip.Rect{
		Min: image.Pt(bodyX, bodyY),
		Max: image.Pt(bodyX+borderW, bodyY+bodyH),
	}.Op())
	paint.FillShape(ops, outerColor, clip.Rect{
		Min: image.Pt(bodyX+bodyW-borderW, bodyY),
		Max: image.Pt(bodyX+bodyW, bodyY+bodyH),
	}.Op())

	// Manila tab
	tabW := int(s * 0.30)
	tabH := int(s * 0.12)
	paint.FillShape(ops, outerColor, clip.Rect{
		Min: image.Pt(bodyX, bodyY-tabH),
		Max: image.Pt(bodyX+tabW, bodyY+borderW),
	}.Op())
}

func drawFileGlyph(ops *op.Ops, size int, glyph icon.GlyphID, badge string) {
	s := float32(size)

	fileX := int(s * 0.22)
	fileY := int(s * 0.08)
	fileW := int(s * 0.56)
	fileH := int(s * 0.78)

	lightAccent := color.NRGBA{R: 227, G: 242, B: 253, A: 255}
	paint.FillShape(ops, lightAccent, clip.Rect{
		Min: image.Pt(fileX, fileY),
		Max: image.Pt(fileX+fileW, fileY+fileH),
	}.Op())

	borderW := 2
	paint.FillShape(ops, colAccent, clip.Rect{
		Min: image.Pt(fileX, fileY),
		Max: image.Pt(fileX+fileW, fileY+borderW),
	}.Op())
	paint.FillShape(ops, colAccent, clip.Rect{
		Min: image.Pt(fileX, fileY+fileH-borderW),
		Max: image.Pt(fileX+fileW, fileY+fileH),
	}.Op())
	paint.FillShape(ops, colAccent, clip.Rect{
		Min: image.Pt(fileX, fileY),
		Max: image.Pt(fileX+borderW, fileY+fileH),
	}.Op())
	paint.FillShape(ops, colAccent, clip.Rect{
		Min: image.Pt(fileX+fileW-borderW, fileY),
		Max: image.Pt(fileX+fileW, fileY+fileH),
	}.Op())

	// Folded corner
	cornerSize := int(s * 0.12)
	paint.FillShape(ops, colAccent, clip.Rect{
		Min: image.Pt(fileX+fileW-cornerSize, fileY),
		Max: image.Pt(fileX+fileW, fileY+cornerSize),
	}.Op())

	if badge != "" && len(badge) <= 5 {
		boxY := int(s * 0.50)
		boxH := int(s * 0.22)
		boxW := int(s * 0.44)
		boxX := int(s*0.5) - boxW/2

		paint.FillShape(ops, glyphColor(glyph), clip.Rect{
			Min: image.Pt(boxX, boxY),
			Max: image.Pt(boxX+boxW, boxY+boxH),
		}.Op())
	}
}

// glyphColor maps a classified file kind to its badge color, so what the
// classifier decides is what gets drawn.
func glyphColor(g icon.GlyphID) color.NRGBA {
	switch g {
	case icon.GlyphText:
		return color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	case icon.GlyphCode:
		return color.NRGBA{R: 0, G: 173, B: 216, A: 255}
	case icon.GlyphImage:
		return color.NRGBA{R: 76, G: 175, B: 80, A: 255}
	case icon.GlyphAudio:
		return color.NRGBA{R: 255, G: 152, B: 0, A: 255}
	case icon.GlyphVideo:
		return color.NRGBA{R: 156, G: 39, B: 176, A: 255}
	case icon.GlyphArchive:
		return color.NRGBA{R: 121, G: 85, B: 72, A: 255}
	case icon.GlyphDocument:
		return color.NRGBA{R: 244, G: 67, B: 54, A: 255}
	default:
		return colAccent
	}
}
