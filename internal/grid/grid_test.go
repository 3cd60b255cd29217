package grid

import (
	"image"
	"testing"

	"github.com/finchapp/finch/internal/fs"
)

func testParams(width int) Params {
	return Params{
		ViewWidth:  width,
		CellWidth:  100,
		CellHeight: 110,
		Spacing:    10,
		Margin:     10,
	}
}

func TestColumns(t *testing.T) {
	testCases := []struct {
		width    int
		expected int
	}{
		{0, 0},   // Unmeasured view places nothing
		{-5, 0},  // Negative widths are treated as unmeasured
		{50, 1},  // Narrower than one cell still shows a column
		{120, 1}, // 110 usable / 110 per cell
		{230, 2},
		{1110, 10},
	}
	for _, tc := range testCases {
		if got := testParams(tc.width).Columns(); got != tc.expected {
			t.Errorf("width %d: expected %d columns, got %d", tc.width, tc.expected, got)
		}
	}
}

func TestCellRectWrapsRows(t *testing.T) {
	p := testParams(340) // 3 columns

	if cols := p.Columns(); cols != 3 {
		t.Fatalf("expected 3 columns, got %d", cols)
	}

	r0 := p.CellRect(0)
	if r0.Min.X != 10 || r0.Min.Y != 10 {
		t.Errorf("cell 0 origin = %v, want (10,10)", r0.Min)
	}

	r2 := p.CellRect(2)
	if r2.Min.X != 10+2*110 || r2.Min.Y != 10 {
		t.Errorf("cell 2 origin = %v", r2.Min)
	}

	// Index 3 wraps to the second row
	r3 := p.CellRect(3)
	if r3.Min.X != 10 || r3.Min.Y != 10+120 {
		t.Errorf("cell 3 origin = %v, want (10,130)", r3.Min)
	}
}

func TestIndexAt(t *testing.T) {
	p := testParams(340)

	if got := p.IndexAt(image.Pt(15, 15), 5); got != 0 {
		t.Errorf("point inside cell 0 resolved to %d", got)
	}
	if got := p.IndexAt(image.Pt(15, 135), 5); got != 3 {
		t.Errorf("point inside cell 3 resolved to %d", got)
	}
	// Between cells: the spacing band belongs to no cell
	if got := p.IndexAt(image.Pt(115, 15), 5); got != -1 {
		t.Errorf("point in spacing resolved to %d", got)
	}
	// Past the last entry
	if got := p.IndexAt(image.Pt(15, 135), 3); got != -1 {
		t.Errorf("point past last entry resolved to %d", got)
	}
}

func TestResolveTarget(t *testing.T) {
	entries := []fs.Entry{
		{Name: "docs", IsDir: true},
		{Name: "Editor.app", IsDir: true, IsBundle: true},
		{Name: "notes.txt"},
	}
	p := testParams(340)

	if got := ResolveTarget(image.Pt(15, 15), entries, p); got == nil || got.Name != "docs" {
		t.Errorf("drop over directory: got %+v", got)
	}
	// Bundles never accept drops
	if got := ResolveTarget(image.Pt(125, 15), entries, p); got != nil {
		t.Errorf("drop over bundle: got %+v", got)
	}
	if got := ResolveTarget(image.Pt(235, 15), entries, p); got != nil {
		t.Errorf("drop over file: got %+v", got)
	}
	// Background
	if got := ResolveTarget(image.Pt(15, 500), entries, p); got != nil {
		t.Errorf("drop over background: got %+v", got)
	}
	// Unmeasured view
	if got := ResolveTarget(image.Pt(15, 15), entries, testParams(0)); got != nil {
		t.Errorf("drop with unknown width: got %+v", got)
	}
}
