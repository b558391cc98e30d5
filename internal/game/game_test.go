package game

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/littleman/internal/core"
	"github.com/vovakirdan/littleman/internal/physics"
	"github.com/vovakirdan/littleman/internal/world"
)

type mapSet map[int]*world.Map

func (m mapSet) Load(id int) (*world.Map, error) {
	if mm, ok := m[id]; ok {
		return mm, nil
	}
	return nil, fmt.Errorf("map %d: %w", id, fs.ErrNotExist)
}

func rect(left, top, w, h int, kind world.CollisionKind, c world.Color) world.Shape {
	return world.Shape{Rect: world.Rect{Left: left, Top: top, Width: w, Height: h}, Collision: kind, Color: c}
}

func trigger(left, top, w, h, index int) world.Shape {
	s := rect(left, top, w, h, world.WarpTrigger, world.Color{})
	s.HasWarp = true
	s.Warp = index
	return s
}

func floorMap(id int, extra []world.Shape, warps []world.Warp) *world.Map {
	shapes := append([]world.Shape{rect(0, 100, 200, 20, world.Solid, world.Color{R: 90})}, extra...)
	return world.New(id, 200, 150, 50, 100, world.NoEdges(), shapes, warps)
}

func newGame(t *testing.T, maps mapSet) *Game {
	t.Helper()
	g, err := New(maps, Options{StartMap: 1, Tuning: physics.DefaultTuning()}, nil)
	require.NoError(t, err)
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Push(a)
	}
	return f
}

func repeat(a core.Action, n int) []core.Action {
	out := make([]core.Action, n)
	for i := range out {
		out[i] = a
	}
	return out
}

func TestNewMissingStartMap(t *testing.T) {
	_, err := New(mapSet{}, Options{StartMap: 3, Tuning: physics.DefaultTuning()}, nil)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestStepAppliesMovesInOrder(t *testing.T) {
	g := newGame(t, mapSet{1: floorMap(1, nil, nil)})

	res := g.Step(frame(core.ActionRight, core.ActionRight, core.ActionLeft))
	assert.Equal(t, 53, res.State.X)
	assert.Equal(t, 100, res.State.Y)
	assert.Equal(t, 1, g.Physics().Character().Step)
	assert.Equal(t, "grounded", res.State.Mode)
	assert.Empty(t, res.Entered)
	assert.Equal(t, 3, g.Stats().Moves)
	assert.Equal(t, 1, g.Stats().Ticks)
}

func TestJumpRunsOnFrameClock(t *testing.T) {
	g := newGame(t, mapSet{1: floorMap(1, nil, nil)})

	res := g.Step(frame(core.ActionUp))
	assert.Equal(t, 97, res.State.Y)
	assert.Equal(t, "ascending", res.State.Mode)

	highest := res.State.Y
	for n := 0; n < 200 && res.State.Mode != "grounded"; n++ {
		res = g.Step(core.NewInputFrame())
		highest = min(highest, res.State.Y)
	}
	assert.Equal(t, 91, highest)
	assert.Equal(t, "grounded", res.State.Mode)
	assert.Equal(t, 100, res.State.Y)
}

func TestPauseFreezesPlay(t *testing.T) {
	g := newGame(t, mapSet{1: floorMap(1, nil, nil)})

	res := g.Step(frame(core.ActionPause))
	assert.True(t, res.State.Paused)
	res = g.Step(frame(core.ActionRight, core.ActionRespawn))
	assert.Equal(t, 50, res.State.X)
	assert.Equal(t, 0, g.Stats().Ticks)

	res = g.Step(frame(core.ActionPause, core.ActionRight))
	assert.False(t, res.State.Paused)
	assert.Equal(t, 53, res.State.X)
	assert.Equal(t, 1, g.Stats().Ticks)
}

func TestRespawn(t *testing.T) {
	g := newGame(t, mapSet{1: floorMap(1, nil, nil)})
	g.Step(frame(repeat(core.ActionRight, 4)...))

	res := g.Step(frame(core.ActionRespawn))
	assert.Equal(t, 50, res.State.X)
	assert.Equal(t, 1, g.Stats().Respawns)
	assert.Contains(t, g.Notice(), "respawned")
}

func TestWarpReportsEnteredMap(t *testing.T) {
	maps := mapSet{
		1: floorMap(1, []world.Shape{trigger(80, 80, 10, 20, 0)}, []world.Warp{{Map: 2, X: 30, Y: 100}}),
		2: floorMap(2, nil, nil),
	}
	g := newGame(t, maps)

	res := g.Step(frame(repeat(core.ActionRight, 6)...))
	assert.Equal(t, 1, res.State.MapID)
	assert.Equal(t, 68, res.State.X)

	res = g.Step(frame(core.ActionRight))
	assert.Equal(t, []int{2}, res.Entered)
	assert.Equal(t, 2, res.State.MapID)
	assert.Equal(t, 30, res.State.X)
	assert.Equal(t, 100, res.State.Y)
	assert.Equal(t, 1, g.Stats().Warps)
	assert.Contains(t, g.Notice(), "map 2")
}

func TestFailedWarpKeepsMap(t *testing.T) {
	maps := mapSet{
		1: floorMap(1, []world.Shape{trigger(80, 80, 10, 20, 0)}, []world.Warp{{Map: 9, X: 30, Y: 100}}),
	}
	g := newGame(t, maps)

	res := g.Step(frame(repeat(core.ActionRight, 7)...))
	assert.Empty(t, res.Entered)
	assert.Equal(t, 1, res.State.MapID)
	assert.Equal(t, 71, res.State.X)
	assert.Equal(t, 1, g.Stats().Failures)
	assert.Contains(t, g.Notice(), "blocked")
}

func TestReloadActiveMapOnly(t *testing.T) {
	g := newGame(t, mapSet{1: floorMap(1, nil, nil)})

	fresh := floorMap(1, []world.Shape{rect(150, 60, 10, 10, world.Solid, world.Color{})}, nil)
	assert.True(t, g.Reload(fresh))
	assert.Same(t, fresh, g.Physics().Map())
	assert.Equal(t, 1, g.Stats().Reloads)

	assert.False(t, g.Reload(floorMap(2, nil, nil)))
	assert.Same(t, fresh, g.Physics().Map())
}

func TestQuitAndBack(t *testing.T) {
	g := newGame(t, mapSet{1: floorMap(1, nil, nil)})

	res := g.Step(frame(core.ActionBack))
	assert.True(t, res.State.Back)
	assert.False(t, res.State.Quit)

	res = g.Step(frame(core.ActionQuit))
	assert.True(t, res.State.Quit)

	g.Reset(core.DefaultConfig())
	assert.False(t, g.State().Quit)
	assert.False(t, g.State().Back)
}

func TestCommandForMovementOnly(t *testing.T) {
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown, core.ActionShift, core.ActionRelease} {
		_, ok := commandFor(a)
		assert.True(t, ok, "%s", a)
	}
	for _, a := range []core.Action{core.ActionNone, core.ActionRespawn, core.ActionHitbox, core.ActionPause, core.ActionBack, core.ActionQuit} {
		_, ok := commandFor(a)
		assert.False(t, ok, "%s", a)
	}
}
