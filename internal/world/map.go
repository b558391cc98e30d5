package world

import "fmt"

// Rect is an axis-aligned rectangle in map pixels. Point containment is
// inclusive on all four sides, so a rectangle covers Width+1 columns.
type Rect struct {
	Left, Top     int
	Width, Height int
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x <= r.Left+r.Width && y >= r.Top && y <= r.Top+r.Height
}

// Color is a render-only RGB triple.
type Color struct {
	R, G, B uint8
}

// ClampColor builds a Color, clamping each channel to [0,255].
func ClampColor(r, g, b int) Color {
	return Color{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Hex returns the colour as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Shape is one rectangle of level geometry.
type Shape struct {
	Rect
	Collision CollisionKind
	Climb     ClimbKind
	Color     Color

	// Warp is the in-map warp index fired by this shape. Only meaningful
	// when HasWarp is set, in which case Climb is NoClimb.
	Warp    int
	HasWarp bool
}

// Warp is a teleport destination.
type Warp struct {
	Map  int
	X, Y int
}

// NoEdge marks an edge without a target map; leaving through it wraps
// around to the opposite side of the same map.
const NoEdge = -1

// EdgeWarps holds the target map for each side of a map, or NoEdge.
type EdgeWarps struct {
	Left, Right, Up, Down int
}

// NoEdges returns EdgeWarps with every side wrapping.
func NoEdges() EdgeWarps {
	return EdgeWarps{Left: NoEdge, Right: NoEdge, Up: NoEdge, Down: NoEdge}
}

// Get returns the configured target for d, or NoEdge.
func (e EdgeWarps) Get(d Direction) int {
	switch d {
	case Left:
		return e.Left
	case Right:
		return e.Right
	case Up:
		return e.Up
	case Down:
		return e.Down
	}
	return NoEdge
}

// Map is the complete geometry of one level. A Map is never modified after
// New returns it; transitions swap the whole value.
type Map struct {
	ID             int
	Width, Height  int
	SpawnX, SpawnY int
	Edges          EdgeWarps

	shapes []Shape
	warps  []Warp
}

// New builds a Map from its parts, copying the slices.
func New(id, width, height, spawnX, spawnY int, edges EdgeWarps, shapes []Shape, warps []Warp) *Map {
	m := &Map{
		ID:     id,
		Width:  width,
		Height: height,
		SpawnX: spawnX,
		SpawnY: spawnY,
		Edges:  edges,
		shapes: make([]Shape, len(shapes)),
		warps:  make([]Warp, len(warps)),
	}
	copy(m.shapes, shapes)
	copy(m.warps, warps)
	return m
}

// ShapeCount returns the number of shapes in draw order.
func (m *Map) ShapeCount() int {
	return len(m.shapes)
}

// ShapeAt returns the shape at index i. It panics if i is out of range,
// like a slice index.
func (m *Map) ShapeAt(i int) Shape {
	return m.shapes[i]
}

// Shapes returns a copy of all shapes in draw order.
func (m *Map) Shapes() []Shape {
	out := make([]Shape, len(m.shapes))
	copy(out, m.shapes)
	return out
}

// WarpCount returns the number of in-map warps.
func (m *Map) WarpCount() int {
	return len(m.warps)
}

// Warps returns a copy of the in-map warp list.
func (m *Map) Warps() []Warp {
	out := make([]Warp, len(m.warps))
	copy(out, m.warps)
	return out
}

// WarpAt returns warp i or an InvalidWarpIndexError.
func (m *Map) WarpAt(i int) (Warp, error) {
	if i < 0 || i >= len(m.warps) {
		return Warp{}, &InvalidWarpIndexError{MapID: m.ID, Index: i, Count: len(m.warps)}
	}
	return m.warps[i], nil
}

// EdgeTarget resolves the map reached by leaving through side d.
// An edge without a target resolves to the map itself.
func (m *Map) EdgeTarget(d Direction) int {
	if id := m.Edges.Get(d); id != NoEdge {
		return id
	}
	return m.ID
}

// SolidAt reports whether (x, y) lies inside any solid shape.
func (m *Map) SolidAt(x, y int) bool {
	for i := range m.shapes {
		s := &m.shapes[i]
		if s.Collision == Solid && s.Contains(x, y) {
			return true
		}
	}
	return false
}

// Climb is the climbability found at a single point.
type Climb struct {
	Kind ClimbKind
	// Warp is valid when IsWarp is set; warps outrank every climb kind.
	Warp   int
	IsWarp bool
}

// Outranks reports whether c takes priority over other.
// Among several warps the one found last wins.
func (c Climb) Outranks(other Climb) bool {
	if c.IsWarp {
		return true
	}
	if other.IsWarp {
		return false
	}
	return c.Kind > other.Kind
}

// ClimbAt returns the highest-priority climbability of all shapes covering
// (x, y). The sensing area of each shape extends three pixels past its left
// edge so the character can grab ladders it is standing just beside.
func (m *Map) ClimbAt(x, y int) Climb {
	var best Climb
	for i := range m.shapes {
		s := &m.shapes[i]
		if s.Climb == NoClimb && !s.HasWarp {
			continue
		}
		if x < s.Left-3 || x > s.Left+s.Width || y < s.Top || y > s.Top+s.Height {
			continue
		}
		c := Climb{Kind: s.Climb}
		if s.HasWarp {
			c = Climb{Warp: s.Warp, IsWarp: true}
		}
		if c.Outranks(best) {
			best = c
		}
	}
	return best
}
