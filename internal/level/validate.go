package level

import (
	"fmt"

	"github.com/vovakirdan/littleman/internal/world"
)

// Severity ranks a validation issue.
type Severity int

const (
	SeverityWarning Severity = iota // playable, but probably a mistake
	SeverityError                   // the map is refused
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Issue codes.
const (
	CodeSize        = "size"
	CodeShapeSize   = "shape-size"
	CodeCollision   = "collision"
	CodeWarpIndex   = "warp-index"
	CodeWarpVisible = "warp-visible"
	CodeDeadTrigger = "dead-trigger"
	CodeUnusedWarp  = "unused-warp"
	CodeSpawn       = "spawn"
	CodeEdgeTarget  = "edge-target"
	CodeWarpTarget  = "warp-target"
	CodeWarpDest    = "warp-dest"
)

// Issue is one finding about a map.
type Issue struct {
	MapID    int
	Severity Severity
	Code     string
	Message  string
	// Err carries a typed cause when there is one.
	Err error
}

func (i Issue) String() string {
	return fmt.Sprintf("map %d: %s [%s] %s", i.MapID, i.Severity, i.Code, i.Message)
}

// Validate checks a single map in isolation.
func Validate(m *world.Map) []Issue {
	var out []Issue
	add := func(sev Severity, code string, err error, format string, args ...any) {
		out = append(out, Issue{MapID: m.ID, Severity: sev, Code: code, Message: fmt.Sprintf(format, args...), Err: err})
	}

	if m.Width <= 0 || m.Height <= 0 {
		add(SeverityError, CodeSize, nil, "size %dx%d must be positive", m.Width, m.Height)
	}

	used := make([]bool, m.WarpCount())
	for i := 0; i < m.ShapeCount(); i++ {
		s := m.ShapeAt(i)
		if s.Width < 0 || s.Height < 0 {
			add(SeverityError, CodeShapeSize, nil, "shape %d has negative size %dx%d", i, s.Width, s.Height)
		}
		if !s.Collision.Valid() {
			add(SeverityError, CodeCollision, nil, "shape %d has unknown collision kind %d", i, int(s.Collision))
		}
		if s.HasWarp {
			if _, err := m.WarpAt(s.Warp); err != nil {
				add(SeverityError, CodeWarpIndex, err, "shape %d fires warp %d but the map has %d warps", i, s.Warp, m.WarpCount())
			} else {
				used[s.Warp] = true
			}
			if s.Collision.Visible() {
				add(SeverityWarning, CodeWarpVisible, nil, "shape %d fires warp %d but is drawn as %s", i, s.Warp, s.Collision)
			}
		} else if s.Collision == world.WarpTrigger {
			add(SeverityWarning, CodeDeadTrigger, nil, "shape %d is a warp trigger without a warp", i)
		}
	}
	for i, u := range used {
		if !u {
			add(SeverityWarning, CodeUnusedWarp, nil, "warp %d is never triggered", i)
		}
	}

	if m.SpawnX < 0 || m.SpawnX > m.Width || m.SpawnY < 0 || m.SpawnY > m.Height {
		add(SeverityWarning, CodeSpawn, nil, "spawn (%d,%d) is outside the %dx%d map", m.SpawnX, m.SpawnY, m.Width, m.Height)
	}
	return out
}

// CheckRefs checks a map's edge and warp targets against the maps lookup
// can load. Warps back into the same map are checked against m itself.
func CheckRefs(m *world.Map, lookup func(id int) (*world.Map, error)) []Issue {
	var out []Issue
	resolve := func(id int) (*world.Map, error) {
		if id == m.ID {
			return m, nil
		}
		return lookup(id)
	}

	for _, d := range []world.Direction{world.Left, world.Right, world.Up, world.Down} {
		id := m.Edges.Get(d)
		if id == world.NoEdge {
			continue
		}
		if _, err := resolve(id); err != nil {
			out = append(out, Issue{MapID: m.ID, Severity: SeverityError, Code: CodeEdgeTarget, Err: err,
				Message: fmt.Sprintf("%s edge leads to map %d which cannot be loaded", d, id)})
		}
	}

	for i, w := range m.Warps() {
		target, err := resolve(w.Map)
		if err != nil {
			out = append(out, Issue{MapID: m.ID, Severity: SeverityError, Code: CodeWarpTarget, Err: err,
				Message: fmt.Sprintf("warp %d leads to map %d which cannot be loaded", i, w.Map)})
			continue
		}
		if w.X < 0 || w.X > target.Width || w.Y < 0 || w.Y > target.Height {
			out = append(out, Issue{MapID: m.ID, Severity: SeverityWarning, Code: CodeWarpDest,
				Message: fmt.Sprintf("warp %d lands at (%d,%d) outside the %dx%d map %d", i, w.X, w.Y, target.Width, target.Height, target.ID)})
		}
	}
	return out
}

// Errors filters issues down to those of error severity.
func Errors(issues []Issue) []Issue {
	var out []Issue
	for _, is := range issues {
		if is.Severity == SeverityError {
			out = append(out, is)
		}
	}
	return out
}
