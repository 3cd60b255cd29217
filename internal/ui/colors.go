package ui

import "image/color"

// Theme colors - variables so a dark mode can swap them later
var (
	colWhite      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colBlack      = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colGray       = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colAccent     = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	colDirBlue    = color.NRGBA{R: 0, G: 0, B: 128, A: 255}
	colBundle     = color.NRGBA{R: 103, G: 58, B: 183, A: 255}
	colDropTarget = color.NRGBA{R: 187, G: 222, B: 251, A: 255}
	colBackdrop   = color.NRGBA{R: 0, G: 0, B: 0, A: 180}
	colDanger     = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
)
