package level

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/littleman/internal/world"
)

// noneToken marks a missing edge target, or the current map as a warp target.
const noneToken = "n"

// maxCount bounds the shape and warp counts of a single map.
const maxCount = 1 << 16

// tokenizer yields whitespace separated tokens together with their line.
// It reads lazily so trailing text after the last warp is never looked at.
type tokenizer struct {
	sc    *bufio.Scanner
	line  int
	queue []string
}

func newTokenizer(data []byte) *tokenizer {
	return &tokenizer{sc: bufio.NewScanner(bytes.NewReader(data))}
}

func (t *tokenizer) next(what string) (string, error) {
	for len(t.queue) == 0 {
		if !t.sc.Scan() {
			if err := t.sc.Err(); err != nil {
				return "", &ParseError{Line: t.line, Msg: err.Error()}
			}
			return "", &ParseError{Line: t.line + 1, Msg: fmt.Sprintf("unexpected end of file, want %s", what)}
		}
		t.line++
		t.queue = strings.Fields(t.sc.Text())
	}
	tok := t.queue[0]
	t.queue = t.queue[1:]
	return tok, nil
}

func (t *tokenizer) integer(what string) (int, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &ParseError{Line: t.line, Msg: fmt.Sprintf("%s: want integer, got %q", what, tok)}
	}
	return n, nil
}

func (t *tokenizer) count(what string) (int, error) {
	n, err := t.integer(what)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &ParseError{Line: t.line, Msg: fmt.Sprintf("%s: negative count %d", what, n)}
	}
	if n > maxCount {
		return 0, &ParseError{Line: t.line, Msg: fmt.Sprintf("%s: count %d exceeds %d", what, n, maxCount)}
	}
	return n, nil
}

// mapRef reads a map id or "n", returning none for "n".
func (t *tokenizer) mapRef(what string, none int) (int, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	if tok == noneToken {
		return none, nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, &ParseError{Line: t.line, Msg: fmt.Sprintf("%s: want map id or %q, got %q", what, noneToken, tok)}
	}
	return n, nil
}

// ParseText decodes the line-oriented level format. Anything after the
// warp list is ignored.
func ParseText(id int, data []byte) (*world.Map, error) {
	t := newTokenizer(data)

	w, err := t.integer("map width")
	if err != nil {
		return nil, err
	}
	h, err := t.integer("map height")
	if err != nil {
		return nil, err
	}
	sx, err := t.integer("spawn x")
	if err != nil {
		return nil, err
	}
	sy, err := t.integer("spawn y")
	if err != nil {
		return nil, err
	}

	edges := world.NoEdges()
	for _, e := range []struct {
		name string
		dst  *int
	}{{"left edge", &edges.Left}, {"right edge", &edges.Right}, {"up edge", &edges.Up}, {"down edge", &edges.Down}} {
		if *e.dst, err = t.mapRef(e.name, world.NoEdge); err != nil {
			return nil, err
		}
	}

	n, err := t.count("shape count")
	if err != nil {
		return nil, err
	}
	var shapes []world.Shape
	for i := 0; i < n; i++ {
		s, err := parseShape(t, i)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, s)
	}

	n, err = t.count("warp count")
	if err != nil {
		return nil, err
	}
	var warps []world.Warp
	for i := 0; i < n; i++ {
		var wp world.Warp
		if wp.Map, err = t.mapRef(fmt.Sprintf("warp %d map", i), id); err != nil {
			return nil, err
		}
		if wp.X, err = t.integer(fmt.Sprintf("warp %d x", i)); err != nil {
			return nil, err
		}
		if wp.Y, err = t.integer(fmt.Sprintf("warp %d y", i)); err != nil {
			return nil, err
		}
		warps = append(warps, wp)
	}

	return world.New(id, w, h, sx, sy, edges, shapes, warps), nil
}

func parseShape(t *tokenizer, i int) (world.Shape, error) {
	var v [9]int
	fields := [9]string{"x", "y", "width", "height", "collision", "climb", "red", "green", "blue"}
	for j := range v {
		n, err := t.integer(fmt.Sprintf("shape %d %s", i, fields[j]))
		if err != nil {
			return world.Shape{}, err
		}
		v[j] = n
	}

	s := world.Shape{
		Rect:      world.Rect{Left: v[0], Top: v[1], Width: v[2], Height: v[3]},
		Collision: world.CollisionKind(v[4]),
		Color:     world.ClampColor(v[6], v[7], v[8]),
	}
	if !s.Collision.Valid() {
		return world.Shape{}, &ParseError{Line: t.line, Msg: fmt.Sprintf("shape %d: unknown collision kind %d", i, v[4])}
	}
	switch code := v[5]; {
	case code >= world.WarpCodeBase:
		s.HasWarp = true
		s.Warp = code - world.WarpCodeBase
	default:
		k, ok := world.ClimbFromCode(code)
		if !ok {
			return world.Shape{}, &ParseError{Line: t.line, Msg: fmt.Sprintf("shape %d: unknown climb code %d", i, code)}
		}
		s.Climb = k
	}
	return s, nil
}

// textHelp is appended by EncodeText for people editing maps by hand.
const textHelp = `
//file format:

mapWidth mapHeight
spawnPointX spawnPointY
edgeWarpLeftMap edgeWarpRightMap edgeWarpUpMap edgeWarpDownMap //n means none, the player wraps to the opposite side of this map
numberOfShapes
x y width height collision climbability r g b //one line per shape, drawn in this order
warpCount
warpToMap warpToX warpToY //n as the map means this map

//collision: 0 back rect, 1 solid, 2 front rect, 3 back oval, 4 front oval, 5 warp trigger (not drawn)
//climbability: 0 none, 1 ladder, 2 water, 3 jump-climb; 10 and above fire warp (value - 10)
`

// EncodeText writes m in the line-oriented format, followed by a help block.
func EncodeText(m *world.Map) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%d %d\n", m.Width, m.Height)
	fmt.Fprintf(&b, "%d %d\n", m.SpawnX, m.SpawnY)
	fmt.Fprintf(&b, "%s %s %s %s\n",
		edgeToken(m.Edges.Left), edgeToken(m.Edges.Right), edgeToken(m.Edges.Up), edgeToken(m.Edges.Down))

	fmt.Fprintf(&b, "%d\n", m.ShapeCount())
	for _, s := range m.Shapes() {
		climb := s.Climb.Code()
		if s.HasWarp {
			climb = world.WarpCodeBase + s.Warp
		}
		fmt.Fprintf(&b, "%d %d %d %d %d %d %d %d %d\n",
			s.Left, s.Top, s.Width, s.Height, int(s.Collision), climb, s.Color.R, s.Color.G, s.Color.B)
	}

	fmt.Fprintf(&b, "%d\n", m.WarpCount())
	for _, w := range m.Warps() {
		fmt.Fprintf(&b, "%d %d %d\n", w.Map, w.X, w.Y)
	}
	b.WriteString(textHelp)
	return b.Bytes()
}

func edgeToken(id int) string {
	if id == world.NoEdge {
		return noneToken
	}
	return strconv.Itoa(id)
}
