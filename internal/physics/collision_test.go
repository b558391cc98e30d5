package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/littleman/internal/world"
)

var allSides = []world.Direction{world.Left, world.Right, world.Up, world.Down}

func TestCanMoveToInsideSolidBlocksEverySide(t *testing.T) {
	box := DefaultTuning().Box
	m := world.New(1, 300, 300, 0, 0, world.NoEdges(), []world.Shape{solid(100, 100, 100, 100)}, nil)

	for _, pos := range [][2]int{{120, 150}, {150, 199}, {180, 130}} {
		for _, side := range allSides {
			assert.False(t, CanMoveTo(m, box, side, pos[0], pos[1]), "side %s at %v", side, pos)
		}
	}
}

func TestCanMoveToOutsideSolidsIsFree(t *testing.T) {
	box := DefaultTuning().Box
	m := world.New(1, 300, 300, 0, 0, world.NoEdges(), []world.Shape{
		solid(100, 100, 50, 50),
		{Rect: world.Rect{Left: 0, Top: 0, Width: 90, Height: 90}, Collision: world.PassFront},
	}, nil)

	for _, pos := range [][2]int{{20, 50}, {200, 250}, {60, 80}} {
		for _, side := range allSides {
			assert.True(t, CanMoveTo(m, box, side, pos[0], pos[1]), "side %s at %v", side, pos)
		}
	}
}

func TestCanMoveToEmptyMap(t *testing.T) {
	m := world.New(1, 10, 10, 0, 0, world.NoEdges(), nil, nil)
	for _, side := range allSides {
		assert.True(t, CanMoveTo(m, DefaultTuning().Box, side, 5, 5))
	}
}

func TestCanMoveToSamplesOnlyLeadingEdge(t *testing.T) {
	box := DefaultTuning().Box
	// Floor whose top row is y=100.
	m := world.New(1, 300, 300, 0, 0, world.NoEdges(), []world.Shape{solid(0, 100, 300, 20)}, nil)

	assert.True(t, IsSupported(m, box, 50, 100), "standing on the floor")
	assert.False(t, IsSupported(m, box, 50, 99), "one pixel above the floor")
	assert.True(t, CanMoveTo(m, box, world.Right, 51, 100), "floor does not block walking")
	assert.True(t, CanMoveTo(m, box, world.Left, 49, 100), "floor does not block walking")
	assert.False(t, CanMoveTo(m, box, world.Down, 50, 101), "cannot step into the floor")
}

func TestCanMoveToCornerExclusion(t *testing.T) {
	box := DefaultTuning().Box
	// A one-pixel post exactly under the left column of the hit box.
	m := world.New(1, 300, 300, 0, 0, world.NoEdges(), []world.Shape{solid(51, 100, 0, 0)}, nil)

	assert.False(t, IsSupported(m, box, 50, 100), "corner pixel x+left is excluded")
	assert.True(t, IsSupported(m, box, 49, 100), "x+left+1 is sampled")
}

func TestWall(t *testing.T) {
	box := DefaultTuning().Box
	m := world.New(1, 300, 300, 0, 0, world.NoEdges(), []world.Shape{solid(100, 0, 10, 300)}, nil)

	// Right column is x+7: the wall starts at column 100.
	assert.True(t, CanMoveTo(m, box, world.Right, 92, 150))
	assert.False(t, CanMoveTo(m, box, world.Right, 93, 150))
	// Left column is x+2: the wall ends at column 110.
	assert.True(t, CanMoveTo(m, box, world.Left, 109, 150))
	assert.False(t, CanMoveTo(m, box, world.Left, 108, 150))
}
