// Package world holds the immutable level geometry the character moves through.
// It has no dependencies on physics, rendering or file formats.
package world

import "fmt"

// CollisionKind says how a shape interacts with the character and where it is drawn.
type CollisionKind int

const (
	PassBack      CollisionKind = iota // no collision, drawn behind the character
	Solid                              // blocks movement, drawn behind the character
	PassFront                          // no collision, drawn in front of the character
	PassBackOval                       // oval, no collision, drawn behind
	PassFrontOval                      // oval, no collision, drawn in front
	WarpTrigger                        // invisible, touching it fires an in-map warp
)

var collisionNames = [...]string{"back", "solid", "front", "back-oval", "front-oval", "warp"}

func (k CollisionKind) String() string {
	if k.Valid() {
		return collisionNames[k]
	}
	return fmt.Sprintf("collision(%d)", int(k))
}

// Valid reports whether k is one of the known kinds.
func (k CollisionKind) Valid() bool {
	return k >= PassBack && k <= WarpTrigger
}

// Oval reports whether the shape is rendered as an ellipse.
func (k CollisionKind) Oval() bool {
	return k == PassBackOval || k == PassFrontOval
}

// Front reports whether the shape is drawn over the character.
func (k CollisionKind) Front() bool {
	return k == PassFront || k == PassFrontOval
}

// Visible reports whether the shape is drawn at all.
func (k CollisionKind) Visible() bool {
	return k != WarpTrigger
}

// ParseCollisionKind accepts either the symbolic name or the numeric code.
func ParseCollisionKind(s string) (CollisionKind, error) {
	for i, name := range collisionNames {
		if s == name {
			return CollisionKind(i), nil
		}
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err == nil && CollisionKind(n).Valid() {
		return CollisionKind(n), nil
	}
	return 0, fmt.Errorf("unknown collision kind %q", s)
}

// ClimbKind is the climbability of a shape. Ordering is the merge priority:
// a higher value wins when several shapes are touched at once.
type ClimbKind int

const (
	NoClimb   ClimbKind = iota
	Water               // slow sink, can jump from it
	Ladder              // no gravity, climb with up
	JumpClimb           // no gravity, can jump from it
)

// Priority order differs from the file codes (1 ladder, 2 water, 3 jump-climb).
var climbNames = map[ClimbKind]string{
	NoClimb:   "none",
	Water:     "water",
	Ladder:    "ladder",
	JumpClimb: "jump-climb",
}

func (k ClimbKind) String() string {
	if name, ok := climbNames[k]; ok {
		return name
	}
	return fmt.Sprintf("climb(%d)", int(k))
}

// ClimbFromCode converts a level-file climb code (0..3) to a ClimbKind.
func ClimbFromCode(code int) (ClimbKind, bool) {
	switch code {
	case 0:
		return NoClimb, true
	case 1:
		return Ladder, true
	case 2:
		return Water, true
	case 3:
		return JumpClimb, true
	}
	return NoClimb, false
}

// Code returns the level-file climb code for k.
func (k ClimbKind) Code() int {
	switch k {
	case Ladder:
		return 1
	case Water:
		return 2
	case JumpClimb:
		return 3
	}
	return 0
}

// ParseClimbKind accepts the symbolic name used by the YAML format.
func ParseClimbKind(s string) (ClimbKind, error) {
	for k, name := range climbNames {
		if s == name {
			return k, nil
		}
	}
	if s == "" {
		return NoClimb, nil
	}
	return NoClimb, fmt.Errorf("unknown climb kind %q", s)
}

// WarpCodeBase is added to a warp index when it is stored in the climb column.
const WarpCodeBase = 10

// Direction is a cardinal direction used for edges and movement.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}
