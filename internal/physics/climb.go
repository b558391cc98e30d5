package physics

import "github.com/vovakirdan/littleman/internal/world"

// ClimbResult is the merged climbability around the character: none,
// water, ladder, jump-climb, or an in-map warp with its index.
type ClimbResult = world.Climb

// Classify samples the outline of the climb-sensing box at (x, y) and
// merges every hit by priority. It has no side effects.
func Classify(m *world.Map, box Box, x, y int) ClimbResult {
	var best ClimbResult
	merge := func(px, py int) {
		if c := m.ClimbAt(px, py); c.Outranks(best) {
			best = c
		}
	}

	for dy := box.Bottom; dy >= box.ClimbTop; dy-- {
		merge(x+box.Left, y+dy)
	}
	for dy := box.Bottom; dy >= box.ClimbTop; dy-- {
		merge(x+box.Right, y+dy)
	}
	for dx := box.Left; dx <= box.Right; dx++ {
		merge(x+dx, y+box.ClimbTop)
	}
	for dx := box.Left; dx <= box.Right; dx++ {
		merge(x+dx, y+box.Bottom)
	}
	return best
}

// holdsOn reports whether the climb result keeps the character from falling.
func holdsOn(c ClimbResult) bool {
	return !c.IsWarp && (c.Kind == world.Ladder || c.Kind == world.JumpClimb)
}
