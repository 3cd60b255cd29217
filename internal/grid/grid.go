// Package grid computes icon-grid geometry. Cell placement and drop-target
// hit-testing are pure functions of the view width so they can be exercised
// without a window.
package grid

import (
	"image"

	"github.com/finchapp/finch/internal/fs"
)

// Params captures the measurements that determine cell placement.
// All values are in pixels.
type Params struct {
	ViewWidth  int // Current content width; 0 or negative means not yet laid out
	CellWidth  int
	CellHeight int
	Spacing    int // Gap between adjacent cells
	Margin     int // Inset from the view's left and top edges
}

// Columns returns how many cells fit per row, at least 1 for any known
// width. A width that has not been measured yet yields 0, meaning the grid
// cannot place cells at all.
func (p Params) Columns() int {
	if p.ViewWidth <= 0 {
		return 0
	}
	cols := (p.ViewWidth - p.Margin) / (p.CellWidth + p.Spacing)
	if cols < 1 {
		return 1
	}
	return cols
}

// CellRect returns the screen rectangle of the cell at index i, filling rows
// left to right before moving down.
func (p Params) CellRect(i int) image.Rectangle {
	cols := p.Columns()
	if cols == 0 {
		return image.Rectangle{}
	}
	row := i / cols
	col := i % cols
	x := p.Margin + col*(p.CellWidth+p.Spacing)
	y := p.Margin + row*(p.CellHeight+p.Spacing)
	return image.Rect(x, y, x+p.CellWidth, y+p.CellHeight)
}

// IndexAt returns the entry index whose cell contains pt, or -1 when pt
// falls on the background or past the last entry.
func (p Params) IndexAt(pt image.Point, count int) int {
	cols := p.Columns()
	if cols == 0 {
		return -1
	}
	for i := 0; i < count; i++ {
		if pt.In(p.CellRect(i)) {
			return i
		}
	}
	return -1
}

// ResolveTarget maps a drop position to the plain directory under it.
// Files, bundles, the background, and an unmeasured view all resolve to nil,
// leaving the drop with no destination.
func ResolveTarget(pt image.Point, entries []fs.Entry, p Params) *fs.Entry {
	i := p.IndexAt(pt, len(entries))
	if i < 0 {
		return nil
	}
	e := &entries[i]
	if !e.IsDir || e.IsBundle {
		return nil
	}
	return e
}
