// Package tui is a terminal frontend for the game built on tcell.
package tui

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Viewport maps terminal cells onto the virtual screen the camera renders to.
type Viewport struct {
	Cols, Rows int
	W, H       float64 // virtual screen size in pixels
}

// CellToScreen returns the virtual screen point at the centre of a cell.
func (v Viewport) CellToScreen(col, row int) (x, y float64) {
	if v.Cols <= 0 || v.Rows <= 0 {
		return 0, 0
	}
	x = (float64(col) + 0.5) / float64(v.Cols) * v.W
	y = (float64(row) + 0.5) / float64(v.Rows) * v.H
	return x, y
}

// ScreenToCell returns the cell containing a virtual screen point.
func (v Viewport) ScreenToCell(x, y float64) (col, row int, ok bool) {
	if v.W <= 0 || v.H <= 0 || x < 0 || y < 0 || x >= v.W || y >= v.H {
		return 0, 0, false
	}
	col = int(x / v.W * float64(v.Cols))
	row = int(y / v.H * float64(v.Rows))
	return col, row, true
}

// Glyph picks the character for a point at distance dist from the centre of
// a galaxy of the given diameter. It returns 0 outside the galaxy.
func Glyph(dist, diameter float64) rune {
	if diameter <= 0 {
		return 0
	}
	f := dist / (diameter / 2)
	switch {
	case f > 1:
		return 0
	case f < 0.35:
		return '@'
	case f < 0.7:
		return '*'
	}
	return '.'
}

// Shade scales an RGB tint in [0, 1] to 0..255 components, dimmed by
// brightness in [0, 1].
func Shade(r, g, b, brightness float64) (int32, int32, int32) {
	k := 255 * min(max(brightness, 0), 1)
	c := func(v float64) int32 {
		return int32(math.Round(min(max(v, 0), 1) * k))
	}
	return c(r), c(g), c(b)
}

// groundDist returns the distance between two ground points.
func groundDist(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}
