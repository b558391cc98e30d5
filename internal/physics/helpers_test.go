package physics

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/littleman/internal/world"
)

// mapSet is an in-memory MapSource.
type mapSet map[int]*world.Map

func (m mapSet) Load(id int) (*world.Map, error) {
	if mm, ok := m[id]; ok {
		return mm, nil
	}
	return nil, fmt.Errorf("map %d: %w", id, fs.ErrNotExist)
}

func solid(left, top, w, h int) world.Shape {
	return world.Shape{Rect: world.Rect{Left: left, Top: top, Width: w, Height: h}, Collision: world.Solid}
}

func climbable(left, top, w, h int, k world.ClimbKind) world.Shape {
	return world.Shape{Rect: world.Rect{Left: left, Top: top, Width: w, Height: h}, Collision: world.PassBack, Climb: k}
}

func warpShape(left, top, w, h, index int) world.Shape {
	return world.Shape{Rect: world.Rect{Left: left, Top: top, Width: w, Height: h}, Collision: world.WarpTrigger, Warp: index, HasWarp: true}
}

func newState(t *testing.T, maps mapSet, start int) *State {
	t.Helper()
	s, err := New(maps, start, DefaultTuning(), nil)
	require.NoError(t, err)
	return s
}

// tickUntil ticks until cond holds, failing after limit ticks.
func tickUntil(t *testing.T, s *State, limit int, cond func() bool) int {
	t.Helper()
	for n := 0; n < limit; n++ {
		if cond() {
			return n
		}
		s.Tick()
	}
	require.FailNow(t, "condition not reached", "after %d ticks, char=%+v mode=%s", limit, s.Character(), s.Mode())
	return limit
}

func eventKinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}
