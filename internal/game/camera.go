package game

import (
	"github.com/vovakirdan/littleman/internal/core"
	"github.com/vovakirdan/littleman/internal/world"
)

// Camera maps level pixels onto terminal cells. X and Y are the level
// pixel shown at the top-left corner of the view.
type Camera struct {
	ScaleX, ScaleY int
	X, Y           int
}

// NewCamera returns a camera at the origin with the given cell size.
func NewCamera(scaleX, scaleY int) Camera {
	return Camera{ScaleX: max(scaleX, 1), ScaleY: max(scaleY, 1)}
}

// Follow centres the view of cols x rows cells on the pixel (px, py).
// The view stops at the map border; a map smaller than the view is centred.
func (c *Camera) Follow(m *world.Map, px, py, cols, rows int) {
	c.X = follow(px, m.Width, cols*c.ScaleX)
	c.Y = follow(py, m.Height, rows*c.ScaleY)
}

func follow(p, size, view int) int {
	if size <= view {
		return (size - view) / 2
	}
	return core.Clamp(p-view/2, 0, size-view)
}

// Cell returns the cell holding pixel (px, py).
func (c Camera) Cell(px, py int) (int, int) {
	return core.FloorDiv(px-c.X, c.ScaleX), core.FloorDiv(py-c.Y, c.ScaleY)
}

// Span returns the cells covering the inclusive pixel rectangle
// [left, right] x [top, bottom]. A cell belongs to the span when its centre
// pixel does; spans thinner than a cell still get one cell.
func (c Camera) Span(left, top, right, bottom int) core.Rect {
	x0, x1 := span(left, right, c.X, c.ScaleX)
	y0, y1 := span(top, bottom, c.Y, c.ScaleY)
	return core.NewRect(x0, y0, x1-x0+1, y1-y0+1)
}

// ShapeCells returns the cells of a shape. Shape bounds are inclusive.
func (c Camera) ShapeCells(r world.Rect) core.Rect {
	return c.Span(r.Left, r.Top, r.Left+r.Width, r.Top+r.Height)
}

func span(lo, hi, origin, scale int) (int, int) {
	half := scale / 2
	a := -core.FloorDiv(-(lo - origin - half), scale)
	b := core.FloorDiv(hi-origin-half, scale)
	if b < a {
		a = core.FloorDiv((lo+hi)/2-origin, scale)
		b = a
	}
	return a, b
}
