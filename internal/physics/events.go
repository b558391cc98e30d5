package physics

import "github.com/vovakirdan/littleman/internal/world"

// EventKind identifies what happened during a move or tick.
type EventKind int

const (
	EventLanded EventKind = iota
	EventEdgeWarp
	EventNormWarp
	EventReloaded
	EventTransitionFailed
)

func (k EventKind) String() string {
	switch k {
	case EventLanded:
		return "landed"
	case EventEdgeWarp:
		return "edge-warp"
	case EventNormWarp:
		return "warp"
	case EventReloaded:
		return "reloaded"
	case EventTransitionFailed:
		return "transition-failed"
	}
	return "unknown"
}

// Event records a notable state change. MapID, X and Y describe where the
// character ended up.
type Event struct {
	Kind  EventKind
	MapID int
	X, Y  int

	// FromMap is the map left behind by a transition.
	FromMap int
	// Edge is set for edge warps.
	Edge world.Direction
	// Warp is the in-map warp index for EventNormWarp.
	Warp int
	// Err is set for EventTransitionFailed.
	Err error
}
