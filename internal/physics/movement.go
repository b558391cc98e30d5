package physics

import (
	"fmt"

	"github.com/vovakirdan/littleman/internal/world"
)

// Command is a single movement input.
type Command byte

const (
	CmdLeft    Command = 'l'
	CmdRight   Command = 'r'
	CmdUp      Command = 'u'
	CmdDown    Command = 'd'
	CmdShift   Command = 's' // reserved
	CmdRelease Command = 'n' // key released, reserved
)

// ParseCommand maps a direction code to a Command.
func ParseCommand(code rune) (Command, error) {
	if code < 0x80 {
		switch c := Command(code); c {
		case CmdLeft, CmdRight, CmdUp, CmdDown, CmdShift, CmdRelease:
			return c, nil
		}
	}
	return 0, fmt.Errorf("physics: unknown direction code %q", code)
}

func (c Command) String() string {
	return string(rune(c))
}

// Move applies one movement command. Blocked moves leave the character in
// place; that is not an error.
func (s *State) Move(c Command) {
	moved := false
	switch c {
	case CmdRight:
		moved = s.walk(world.Right, 1)
	case CmdLeft:
		moved = s.walk(world.Left, -1)
	case CmdUp:
		moved = s.moveUp()
	case CmdDown:
		moved = s.moveDown()
	case CmdShift, CmdRelease:
	}
	if moved {
		s.char.Step ^= 1
	}

	s.climb()
	if s.char.JumpPhase == JumpIdle {
		s.checkFall()
	}
}

func (s *State) walk(side world.Direction, dx int) bool {
	moved := false
	for i := 0; i < s.tuning.Substeps; i++ {
		if CanMoveTo(s.active, s.tuning.Box, side, s.char.X+dx, s.char.Y) {
			s.char.X += dx
			moved = true
		}
		if side == world.Right && s.char.X >= s.active.Width+s.tuning.Edges.Right ||
			side == world.Left && s.char.X <= -s.tuning.Edges.Left {
			s.edgeWarp(side)
			break
		}
	}
	return moved
}

func (s *State) moveUp() bool {
	c := Classify(s.active, s.tuning.Box, s.char.X, s.char.Y)
	if s.canJump(c) {
		s.startJump()
		return false
	}
	if !holdsOn(c) {
		return false
	}
	moved := false
	for i := 0; i < s.tuning.Substeps; i++ {
		if CanMoveTo(s.active, s.tuning.Box, world.Up, s.char.X, s.char.Y) {
			moved = true
			if s.stepUp() {
				break
			}
		}
	}
	return moved
}

func (s *State) moveDown() bool {
	moved := false
	for i := 0; i < s.tuning.Substeps; i++ {
		if s.char.JumpPhase != JumpIdle {
			break
		}
		if CanMoveTo(s.active, s.tuning.Box, world.Down, s.char.X, s.char.Y) {
			moved = true
			if s.stepDown() {
				break
			}
		}
	}
	return moved
}

// canJump reports whether an upward command starts the jump arc: standing
// on solid ground, swimming, or holding a jump-climb surface, with room
// for the whole initial lift and no arc already running.
func (s *State) canJump(c ClimbResult) bool {
	if s.char.JumpPhase != JumpIdle || c.IsWarp {
		return false
	}
	box := s.tuning.Box
	footing := (c.Kind == world.NoClimb && IsSupported(s.active, box, s.char.X, s.char.Y)) ||
		c.Kind == world.Water || c.Kind == world.JumpClimb
	if !footing {
		return false
	}
	for k := 0; k < s.tuning.JumpLift; k++ {
		if !CanMoveTo(s.active, box, world.Up, s.char.X, s.char.Y-k) {
			return false
		}
	}
	return true
}

func (s *State) startJump() {
	s.gravity.Mode = Ascending
	s.clock = 0
	s.char.Y -= s.tuning.JumpLift
	s.char.Step = 0
	s.char.JumpPhase = 0
	if s.char.Y <= -s.tuning.Edges.Up {
		s.edgeWarp(world.Up)
	}
}
