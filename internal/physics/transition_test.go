package physics

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/littleman/internal/world"
)

func TestWarpRoundTrip(t *testing.T) {
	a := world.New(1, 200, 150, 25, 100, world.NoEdges(),
		[]world.Shape{solid(0, 100, 200, 20), warpShape(20, 80, 10, 10, 0)},
		[]world.Warp{{Map: 2, X: 40, Y: 60}})
	bEdges := world.NoEdges()
	bEdges.Left = 1
	b := world.New(2, 120, 100, 0, 0, bEdges, []world.Shape{solid(0, 60, 120, 10)}, nil)
	s := newState(t, mapSet{1: a, 2: b}, 1)
	require.Equal(t, 1, s.Map().ID, "spawning on a trigger does not fire it")

	s.Move(CmdShift)
	require.Equal(t, 2, s.Map().ID)
	assert.Equal(t, 40, s.Character().X)
	assert.Equal(t, 60, s.Character().Y)
	assert.Equal(t, Grounded, s.Mode())

	events := s.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventNormWarp, events[0].Kind)
	assert.Equal(t, 1, events[0].FromMap)
	assert.Equal(t, 0, events[0].Warp)

	for i := 0; i < 40 && s.Map().ID == 2; i++ {
		s.Move(CmdLeft)
	}
	require.Equal(t, 1, s.Map().ID)
	assert.Equal(t, a.Width+s.Tuning().Edges.Right, s.Character().X)
	assert.Equal(t, 60, s.Character().Y)
	assert.Contains(t, eventKinds(s.DrainEvents()), EventEdgeWarp)
}

func TestEdgeWithoutTargetWraps(t *testing.T) {
	m := world.New(5, 100, 150, 80, 100, world.NoEdges(), []world.Shape{solid(0, 100, 100, 20)}, nil)
	s := newState(t, mapSet{5: m}, 5)

	for i := 0; i < 20 && s.Character().X > 0; i++ {
		s.Move(CmdRight)
	}
	assert.Equal(t, 5, s.Map().ID)
	assert.Equal(t, -s.Tuning().Edges.Left, s.Character().X)

	var edge *Event
	for _, e := range s.DrainEvents() {
		if e.Kind == EventEdgeWarp {
			edge = &e
		}
	}
	require.NotNil(t, edge)
	assert.Equal(t, 5, edge.FromMap)
	assert.Equal(t, 5, edge.MapID)
	assert.Equal(t, world.Right, edge.Edge)
}

func TestEdgeWarpLoadFailureKeepsMap(t *testing.T) {
	edges := world.NoEdges()
	edges.Right = 99
	m := world.New(1, 100, 150, 50, 100, edges, []world.Shape{solid(0, 100, 100, 20)}, nil)
	s := newState(t, mapSet{1: m}, 1)

	err := s.EdgeWarp(world.Right)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Same(t, m, s.Map())
	assert.Equal(t, m.Width+s.Tuning().Edges.Right-1, s.Character().X)

	events := s.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTransitionFailed, events[0].Kind)
	assert.ErrorIs(t, events[0].Err, fs.ErrNotExist)

	// Walking into the broken edge keeps failing without leaving the map.
	for i := 0; i < 5; i++ {
		s.Move(CmdRight)
	}
	assert.Same(t, m, s.Map())
	assert.Less(t, s.Character().X, m.Width+s.Tuning().Edges.Right)
}

func TestFallThroughBrokenBottomEdgeStops(t *testing.T) {
	edges := world.NoEdges()
	edges.Down = 99
	m := world.New(1, 100, 150, 50, 0, edges, nil, nil)
	s := newState(t, mapSet{1: m}, 1)

	tickUntil(t, s, 300, func() bool { return s.Mode() == Grounded })
	assert.Equal(t, m.Height+s.Tuning().Edges.Down-1, s.Character().Y)
	assert.Same(t, m, s.Map())
	assert.Contains(t, eventKinds(s.DrainEvents()), EventTransitionFailed)
}

func TestInvalidWarpIndexIsRejectedOnce(t *testing.T) {
	m := world.New(1, 200, 150, 25, 100, world.NoEdges(),
		[]world.Shape{solid(0, 100, 200, 20), warpShape(20, 80, 10, 10, 3)}, nil)
	s := newState(t, mapSet{1: m}, 1)

	s.Move(CmdShift)
	events := s.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTransitionFailed, events[0].Kind)
	var idx *world.InvalidWarpIndexError
	require.ErrorAs(t, events[0].Err, &idx)
	assert.Equal(t, 3, idx.Index)
	assert.Equal(t, 0, idx.Count)

	s.Move(CmdShift)
	assert.Empty(t, s.DrainEvents(), "still on the trigger")

	s.Move(CmdRight) // x=28, trigger still sensed
	assert.Empty(t, s.DrainEvents())
	s.Move(CmdRight) // x=31, off the trigger
	s.Move(CmdLeft)  // back on
	assert.Equal(t, []EventKind{EventTransitionFailed}, eventKinds(s.DrainEvents()))

	assert.Error(t, s.NormWarp(3))
	assert.Same(t, m, s.Map())
}

func TestWarpGravityReset(t *testing.T) {
	tests := []struct {
		name   string
		normal bool
		edge   bool
		fire   func(s *State) error
		reset  bool
	}{
		{name: "norm warp keeps speed", fire: func(s *State) error { return s.NormWarp(0) }},
		{name: "norm warp resets", normal: true, reset: true, fire: func(s *State) error { return s.NormWarp(0) }},
		{name: "edge warp keeps speed", fire: func(s *State) error { return s.EdgeWarp(world.Down) }},
		{name: "edge warp resets", edge: true, reset: true, fire: func(s *State) error { return s.EdgeWarp(world.Down) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := world.New(1, 200, 5000, 50, 0, world.NoEdges(), nil, []world.Warp{{Map: 1, X: 50, Y: 0}})
			tn := DefaultTuning()
			tn.ResetOnNormWarp = tc.normal
			tn.ResetOnEdgeWarp = tc.edge
			s, err := New(mapSet{1: m}, 1, tn, nil)
			require.NoError(t, err)

			for i := 0; i < 30; i++ {
				s.Tick()
			}
			require.Equal(t, FallingFast, s.Mode())
			before := s.Gravity().Speed()
			require.Greater(t, before, tn.Fast.Initial)

			require.NoError(t, tc.fire(s))
			assert.Equal(t, FallingFast, s.Mode())
			if tc.reset {
				assert.Equal(t, tn.Fast.Initial, s.Gravity().Speed())
			} else {
				assert.Equal(t, before, s.Gravity().Speed())
			}
		})
	}
}

func TestReloadSwapsActiveMap(t *testing.T) {
	v1 := floorMap()
	s := newState(t, mapSet{1: v1}, 1)
	require.Equal(t, Grounded, s.Mode())

	v2 := world.New(1, 200, 150, 50, 100, world.NoEdges(), nil, nil)
	assert.False(t, s.Reload(world.New(2, 10, 10, 0, 0, world.NoEdges(), nil, nil)))
	assert.False(t, s.Reload(nil))
	assert.Same(t, v1, s.Map())

	require.True(t, s.Reload(v2))
	assert.Same(t, v2, s.Map())
	assert.Equal(t, 50, s.Character().X)
	assert.Equal(t, 100, s.Character().Y)
	assert.Equal(t, FallingNormal, s.Mode(), "floor is gone")
	assert.Equal(t, []EventKind{EventReloaded}, eventKinds(s.DrainEvents()))
}

func TestNewMissingStartMap(t *testing.T) {
	_, err := New(mapSet{}, 7, DefaultTuning(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRespawn(t *testing.T) {
	s := newState(t, mapSet{1: floorMap()}, 1)
	s.Move(CmdRight)
	s.Move(CmdUp)
	require.Equal(t, Ascending, s.Mode())

	s.Respawn()
	assert.Equal(t, Character{X: 50, Y: 100, JumpPhase: JumpIdle}, s.Character())
	assert.Equal(t, Grounded, s.Mode())

	snap := s.Snapshot()
	assert.Equal(t, s.Character(), snap.Char)
	assert.Same(t, s.Map(), snap.Map)
}

func TestJumpThroughTopEdge(t *testing.T) {
	edges := world.NoEdges()
	edges.Up = 2
	a := world.New(1, 100, 150, 50, 2, edges, []world.Shape{solid(0, 2, 100, 10)}, nil)
	b := world.New(2, 100, 100, 0, 0, world.NoEdges(), nil, nil)
	s := newState(t, mapSet{1: a, 2: b}, 1)
	require.Equal(t, Grounded, s.Mode())

	s.Move(CmdUp)
	require.Equal(t, 1, s.Map().ID)
	assert.Equal(t, -1, s.Character().Y)

	s.Tick()
	require.Equal(t, 2, s.Map().ID, "rising past the top edge")
	assert.Equal(t, b.Height+s.Tuning().Edges.Down, s.Character().Y)
	assert.Equal(t, 50, s.Character().X)
	assert.Equal(t, Ascending, s.Mode(), "the arc keeps going on the new map")

	var edge *Event
	for _, e := range s.DrainEvents() {
		if e.Kind == EventEdgeWarp {
			edge = &e
		}
	}
	require.NotNil(t, edge)
	assert.Equal(t, world.Up, edge.Edge)
	assert.Equal(t, 1, edge.FromMap)
	assert.Equal(t, 2, edge.MapID)

	s.Tick()
	assert.Equal(t, b.Height+s.Tuning().Edges.Down-s.Tuning().RisePerPhase, s.Character().Y)
}

func TestFallThroughBottomEdge(t *testing.T) {
	edges := world.NoEdges()
	edges.Down = 2
	a := world.New(1, 100, 100, 50, 50, edges, nil, nil)
	b := world.New(2, 100, 150, 0, 0, world.NoEdges(), []world.Shape{solid(0, 60, 100, 10)}, nil)
	s := newState(t, mapSet{1: a, 2: b}, 1)
	require.Equal(t, FallingNormal, s.Mode())

	tickUntil(t, s, 300, func() bool { return s.Map().ID == 2 })
	var edge *Event
	for _, e := range s.DrainEvents() {
		if e.Kind == EventEdgeWarp {
			edge = &e
		}
	}
	require.NotNil(t, edge)
	assert.Equal(t, world.Down, edge.Edge)
	assert.Equal(t, 50, edge.X)
	assert.Equal(t, -s.Tuning().Edges.Up, edge.Y, "enters just above the top of the next map")

	tickUntil(t, s, 300, func() bool { return s.Mode() == Grounded })
	assert.Equal(t, 2, s.Map().ID)
	assert.Equal(t, 60, s.Character().Y)
}
