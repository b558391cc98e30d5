package physics

import (
	"fmt"

	"github.com/vovakirdan/littleman/internal/world"
)

// EdgeWarp moves the character across side d of the active map. The target
// map is loaded first; if that fails nothing changes except that the
// character is held just inside the boundary it tried to cross.
func (s *State) EdgeWarp(d world.Direction) error {
	return s.edgeWarp(d)
}

// NormWarp fires in-map warp i of the active map.
func (s *State) NormWarp(i int) error {
	return s.normWarp(i)
}

func (s *State) edgeWarp(d world.Direction) error {
	from := s.active
	target := from.EdgeTarget(d)

	next, err := s.loadTarget(target)
	if err != nil {
		s.rejectTransition(err, "edge", target)
		s.pinInside(d)
		return err
	}

	e := s.tuning.Edges
	s.active = next
	switch d {
	case world.Left:
		s.char.X = next.Width + e.Right
	case world.Right:
		s.char.X = -e.Left
	case world.Up:
		s.char.Y = next.Height + e.Down
	case world.Down:
		s.char.Y = -e.Up
	}
	s.failedWarp = nil
	s.log.Debug("edge warp", "from", from.ID, "to", next.ID, "edge", d, "x", s.char.X, "y", s.char.Y)
	s.emit(Event{Kind: EventEdgeWarp, MapID: next.ID, FromMap: from.ID, Edge: d, X: s.char.X, Y: s.char.Y})

	if s.tuning.ResetOnEdgeWarp {
		s.ResetGravity()
	}
	s.checkFall()
	return nil
}

func (s *State) normWarp(i int) error {
	from := s.active
	w, err := from.WarpAt(i)
	if err != nil {
		s.rejectTransition(err, "warp", -1)
		return err
	}
	next, err := s.loadTarget(w.Map)
	if err != nil {
		s.rejectTransition(err, "warp", w.Map)
		return err
	}

	s.active = next
	s.char.X, s.char.Y = w.X, w.Y
	s.log.Debug("warp", "from", from.ID, "index", i, "to", next.ID, "x", w.X, "y", w.Y)
	s.emit(Event{Kind: EventNormWarp, MapID: next.ID, FromMap: from.ID, Warp: i, X: w.X, Y: w.Y})

	if s.tuning.ResetOnNormWarp {
		s.ResetGravity()
	}
	s.checkFall()
	return nil
}

// loadTarget returns the active map itself for same-map transitions so a
// wrap never touches the map source.
func (s *State) loadTarget(id int) (*world.Map, error) {
	if id == s.active.ID {
		return s.active, nil
	}
	m, err := s.maps.Load(id)
	if err != nil {
		return nil, fmt.Errorf("load map %d: %w", id, err)
	}
	return m, nil
}

func (s *State) rejectTransition(err error, kind string, target int) {
	s.log.Warn("map transition rejected", "kind", kind, "map", s.active.ID, "target", target, "err", err)
	s.emit(Event{Kind: EventTransitionFailed, MapID: s.active.ID, FromMap: s.active.ID, X: s.char.X, Y: s.char.Y, Err: err})
}

// pinInside keeps the character one pixel short of the edge-warp line for
// side d and stops a fall through the bottom.
func (s *State) pinInside(d world.Direction) {
	e := s.tuning.Edges
	switch d {
	case world.Left:
		s.char.X = -e.Left + 1
	case world.Right:
		s.char.X = s.active.Width + e.Right - 1
	case world.Up:
		s.char.Y = -e.Up + 1
	case world.Down:
		s.char.Y = s.active.Height + e.Down - 1
		if s.gravity.Mode.Falling() {
			s.gravity.Mode = Grounded
			s.ResetGravity()
			s.clock = 0
		}
	}
}
