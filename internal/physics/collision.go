package physics

import "github.com/vovakirdan/littleman/internal/world"

// CanMoveTo samples the leading edge of the hit box at (x, y) on the given
// side against solid shapes, one pixel in from each corner. Horizontally
// that is the box's own edge column, so callers pass the target x. Vertically
// it is the row just beyond the box, so callers pass the current y.
func CanMoveTo(m *world.Map, box Box, side world.Direction, x, y int) bool {
	switch side {
	case world.Left:
		return columnClear(m, x+box.Left+1, y+box.Top, y+box.Bottom)
	case world.Right:
		return columnClear(m, x+box.Right-1, y+box.Top, y+box.Bottom)
	case world.Up:
		return rowClear(m, y+box.Top-1, x+box.Left+1, x+box.Right-1)
	case world.Down:
		return rowClear(m, y+box.Bottom+1, x+box.Left+1, x+box.Right-1)
	}
	return true
}

// IsSupported reports whether the character stands on something solid.
func IsSupported(m *world.Map, box Box, x, y int) bool {
	return !CanMoveTo(m, box, world.Down, x, y)
}

func columnClear(m *world.Map, x, top, bottom int) bool {
	for y := bottom; y >= top; y-- {
		if m.SolidAt(x, y) {
			return false
		}
	}
	return true
}

func rowClear(m *world.Map, y, left, right int) bool {
	for x := left; x <= right; x++ {
		if m.SolidAt(x, y) {
			return false
		}
	}
	return true
}
