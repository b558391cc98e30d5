package physics

import (
	"math"
	"time"

	"github.com/vovakirdan/littleman/internal/world"
)

// Mode is the vertical motion state of the character.
type Mode int

const (
	Grounded Mode = iota // standing, climbing, or otherwise not moved by the clock
	Ascending
	FallingNormal
	FallingFast
)

func (m Mode) String() string {
	switch m {
	case Grounded:
		return "grounded"
	case Ascending:
		return "ascending"
	case FallingNormal:
		return "falling"
	case FallingFast:
		return "falling-fast"
	}
	return "unknown"
}

// Falling reports whether either gravity regime is active.
func (m Mode) Falling() bool {
	return m == FallingNormal || m == FallingFast
}

// Gravity holds the fall state: the active mode and one speed accumulator
// per regime.
type Gravity struct {
	Mode   Mode
	normal float64
	fast   float64
}

func newGravity(t Tuning) Gravity {
	g := Gravity{Mode: Grounded}
	g.reset(t)
	return g
}

func (g *Gravity) reset(t Tuning) {
	g.normal = t.Normal.Initial
	g.fast = t.Fast.Initial
}

// Speed returns the accumulator of the active regime. While not falling it
// reports the normal regime's accumulator.
func (g Gravity) Speed() float64 {
	if g.Mode == FallingFast {
		return g.fast
	}
	return g.normal
}

func (t Tuning) regime(m Mode) Regime {
	if m == FallingFast {
		return t.Fast
	}
	return t.Normal
}

// period returns how often the clock ticks in mode m, or zero when idle.
func (t Tuning) period(m Mode) time.Duration {
	switch m {
	case Ascending:
		return t.AscendPeriod
	case FallingNormal, FallingFast:
		return t.regime(m).Period
	}
	return 0
}

// fallSteps is the number of one-pixel descents for the current tick.
func (s *State) fallSteps() int {
	r := s.tuning.regime(s.gravity.Mode)
	n := int(math.Floor(s.gravity.Speed() / r.Divider))
	return min(max(n, 1), s.tuning.Terminal)
}

// accelerate grows the active accumulator by one tick and switches to the
// fast regime once the normal one reaches the threshold.
func (s *State) accelerate() {
	t := s.tuning
	switch s.gravity.Mode {
	case FallingNormal:
		s.gravity.normal = math.Min(s.gravity.normal+t.Normal.Acceleration, float64(t.Terminal)*t.Normal.Divider)
		if s.gravity.normal/t.Normal.Divider >= t.FastThreshold {
			s.gravity.Mode = FallingFast
		}
	case FallingFast:
		s.gravity.fast = math.Min(s.gravity.fast+t.Fast.Acceleration, float64(t.Terminal)*t.Fast.Divider)
	}
}

// ResetGravity puts both accumulators back to their initial values.
func (s *State) ResetGravity() {
	s.gravity.reset(s.tuning)
}

// checkFall starts a normal fall when nothing holds the character up.
// It never interrupts a jump or an ongoing fall.
func (s *State) checkFall() {
	if s.gravity.Mode != Grounded {
		return
	}
	c := Classify(s.active, s.tuning.Box, s.char.X, s.char.Y)
	if IsSupported(s.active, s.tuning.Box, s.char.X, s.char.Y) || holdsOn(c) {
		return
	}
	s.gravity.Mode = FallingNormal
}

func (s *State) land() {
	s.gravity.Mode = Grounded
	s.char.Step = 0
	s.ResetGravity()
	s.clock = 0
	s.emit(Event{Kind: EventLanded, MapID: s.active.ID, X: s.char.X, Y: s.char.Y})
}

// fallTick runs one tick of the active gravity regime.
func (s *State) fallTick() {
	box := s.tuning.Box
	steps := s.fallSteps()
	for i := 0; i < steps && s.gravity.Mode.Falling(); i++ {
		c := s.climb()
		if c.IsWarp {
			continue
		}
		if IsSupported(s.active, box, s.char.X, s.char.Y) || c.Kind != world.NoClimb {
			break
		}
		s.stepDown()
	}
	if !s.gravity.Mode.Falling() {
		return
	}

	c := s.climb()
	if c.IsWarp {
		c = Classify(s.active, box, s.char.X, s.char.Y)
	}
	switch {
	case IsSupported(s.active, box, s.char.X, s.char.Y) || holdsOn(c):
		s.land()
	case c.Kind == world.Water:
		s.stepDown()
		s.ResetGravity()
		if s.gravity.Mode == FallingFast {
			s.gravity.Mode = FallingNormal
		}
	default:
		s.accelerate()
	}
}

// ascendTick runs one phase of the scripted jump arc.
func (s *State) ascendTick() {
	switch s.char.JumpPhase {
	case 0, 1:
		for i := 0; i < s.tuning.RisePerPhase; i++ {
			if !CanMoveTo(s.active, s.tuning.Box, world.Up, s.char.X, s.char.Y) || s.stepUp() {
				break
			}
		}
		s.char.JumpPhase++
	default:
		s.char.JumpPhase = JumpIdle
		s.char.Step = 0
		s.gravity.Mode = Grounded
		s.climb()
		s.checkFall()
	}
}

// stepDown and stepUp move one pixel and report whether the boundary was
// crossed and an edge transition attempted.
func (s *State) stepDown() bool {
	s.char.Y++
	if s.char.Y >= s.active.Height+s.tuning.Edges.Down {
		s.edgeWarp(world.Down)
		return true
	}
	return false
}

func (s *State) stepUp() bool {
	s.char.Y--
	if s.char.Y <= -s.tuning.Edges.Up {
		s.edgeWarp(world.Up)
		return true
	}
	return false
}
