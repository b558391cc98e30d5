package physics

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/littleman/internal/world"
)

// JumpIdle is the jump phase when no scripted arc is running.
const JumpIdle = 3

// maxTicksPerAdvance bounds catch-up work after a long stall.
const maxTicksPerAdvance = 64

// Character is the player's position and animation state.
type Character struct {
	X, Y      int
	Step      int // walking animation frame, 0 or 1
	JumpPhase int // 0..2 while rising, JumpIdle otherwise
}

// MapSource loads level geometry by id.
type MapSource interface {
	Load(id int) (*world.Map, error)
}

// Snapshot is a consistent read-only view for renderers.
type Snapshot struct {
	Char  Character
	Mode  Mode
	Speed float64
	Map   *world.Map
}

// State is the whole simulation: one character, one active map, gravity and
// the tick clock. It is not safe for concurrent use.
type State struct {
	tuning Tuning
	maps   MapSource
	log    *log.Logger

	char    Character
	active  *world.Map
	gravity Gravity
	clock   time.Duration

	// failedWarp suppresses retrying a broken in-map warp while the
	// character is still standing on its trigger.
	failedWarp *warpKey

	events []Event
}

type warpKey struct {
	mapID, index int
}

// New loads the start map and places the character on its spawn point.
func New(maps MapSource, startID int, t Tuning, logger *log.Logger) (*State, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m, err := maps.Load(startID)
	if err != nil {
		return nil, fmt.Errorf("physics: load start map %d: %w", startID, err)
	}
	s := &State{
		tuning:  t,
		maps:    maps,
		log:     logger,
		active:  m,
		gravity: newGravity(t),
	}
	s.Respawn()
	return s, nil
}

// Respawn moves the character to the active map's spawn point at rest.
func (s *State) Respawn() {
	s.char = Character{X: s.active.SpawnX, Y: s.active.SpawnY, JumpPhase: JumpIdle}
	s.gravity = newGravity(s.tuning)
	s.clock = 0
	s.failedWarp = nil
	s.checkFall()
}

// Character returns the current character state.
func (s *State) Character() Character { return s.char }

// Map returns the active map.
func (s *State) Map() *world.Map { return s.active }

// Mode returns the current vertical motion mode.
func (s *State) Mode() Mode { return s.gravity.Mode }

// Gravity returns a copy of the gravity state.
func (s *State) Gravity() Gravity { return s.gravity }

// Tuning returns the constants the state was built with.
func (s *State) Tuning() Tuning { return s.tuning }

// Snapshot returns the character, mode and map together.
func (s *State) Snapshot() Snapshot {
	return Snapshot{Char: s.char, Mode: s.gravity.Mode, Speed: s.gravity.Speed(), Map: s.active}
}

// Supported reports whether the character currently stands on a solid shape.
func (s *State) Supported() bool {
	return IsSupported(s.active, s.tuning.Box, s.char.X, s.char.Y)
}

// Climb classifies the character's current position without firing warps.
func (s *State) Climb() ClimbResult {
	return Classify(s.active, s.tuning.Box, s.char.X, s.char.Y)
}

// Tick runs exactly one step of the active regime. It does nothing while grounded.
func (s *State) Tick() {
	switch {
	case s.gravity.Mode == Ascending:
		s.ascendTick()
	case s.gravity.Mode.Falling():
		s.fallTick()
	}
}

// Advance feeds elapsed time to the clock and runs every tick that came due.
// The period follows the mode, so a switch between regimes mid-call takes
// effect for the remaining time.
func (s *State) Advance(dt time.Duration) {
	if s.gravity.Mode == Grounded {
		s.clock = 0
		return
	}
	s.clock += dt
	for n := 0; n < maxTicksPerAdvance; n++ {
		p := s.tuning.period(s.gravity.Mode)
		if p <= 0 || s.clock < p {
			break
		}
		s.clock -= p
		s.Tick()
	}
	if s.gravity.Mode == Grounded {
		s.clock = 0
	}
}

// Reload swaps in a new version of the active map, keeping the character
// where it is. Maps with a different id are ignored.
func (s *State) Reload(m *world.Map) bool {
	if m == nil || m.ID != s.active.ID {
		return false
	}
	s.active = m
	s.failedWarp = nil
	s.emit(Event{Kind: EventReloaded, MapID: m.ID, X: s.char.X, Y: s.char.Y})
	s.checkFall()
	return true
}

// climb classifies the current position and fires an in-map warp if one
// is touched.
func (s *State) climb() ClimbResult {
	c := Classify(s.active, s.tuning.Box, s.char.X, s.char.Y)
	if !c.IsWarp {
		s.failedWarp = nil
		return c
	}
	key := warpKey{mapID: s.active.ID, index: c.Warp}
	if s.failedWarp != nil && *s.failedWarp == key {
		return ClimbResult{}
	}
	if err := s.normWarp(c.Warp); err != nil {
		s.failedWarp = &key
		return ClimbResult{}
	}
	return c
}

func (s *State) emit(e Event) {
	s.events = append(s.events, e)
}

// DrainEvents returns and clears the events recorded since the last call.
func (s *State) DrainEvents() []Event {
	out := s.events
	s.events = nil
	return out
}
