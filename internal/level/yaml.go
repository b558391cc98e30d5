package level

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/littleman/internal/world"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID     int         `yaml:"id,omitempty"`
	Size   YAMLSize    `yaml:"size"`
	Spawn  YAMLPoint   `yaml:"spawn"`
	Edges  YAMLEdges   `yaml:"edges,omitempty"`
	Shapes []YAMLShape `yaml:"shapes"`
	Warps  []YAMLWarp  `yaml:"warps,omitempty"`
}

// YAMLSize represents map dimensions in pixels.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPoint is a pixel position.
type YAMLPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLEdges holds edge targets; a missing side wraps around.
type YAMLEdges struct {
	Left  *int `yaml:"left,omitempty"`
	Right *int `yaml:"right,omitempty"`
	Up    *int `yaml:"up,omitempty"`
	Down  *int `yaml:"down,omitempty"`
}

// YAMLShape represents one rectangle with symbolic kinds.
type YAMLShape struct {
	X         int           `yaml:"x"`
	Y         int           `yaml:"y"`
	W         int           `yaml:"w"`
	H         int           `yaml:"h"`
	Collision yamlCollision `yaml:"collision"`
	Climb     yamlClimb     `yaml:"climb,omitempty"`
	Warp      *int          `yaml:"warp,omitempty"`
	Color     yamlColor     `yaml:"color"`
}

// YAMLWarp is an in-map warp; a missing map means this map.
type YAMLWarp struct {
	Map *int `yaml:"map,omitempty"`
	X   int  `yaml:"x"`
	Y   int  `yaml:"y"`
}

type yamlCollision world.CollisionKind

func (c yamlCollision) MarshalYAML() (any, error) {
	return world.CollisionKind(c).String(), nil
}

func (c *yamlCollision) UnmarshalYAML(value *yaml.Node) error {
	k, err := world.ParseCollisionKind(value.Value)
	if err != nil {
		return &ParseError{Line: value.Line, Msg: err.Error()}
	}
	*c = yamlCollision(k)
	return nil
}

type yamlClimb world.ClimbKind

func (c yamlClimb) IsZero() bool { return world.ClimbKind(c) == world.NoClimb }

func (c yamlClimb) MarshalYAML() (any, error) {
	return world.ClimbKind(c).String(), nil
}

func (c *yamlClimb) UnmarshalYAML(value *yaml.Node) error {
	k, err := world.ParseClimbKind(value.Value)
	if err != nil {
		return &ParseError{Line: value.Line, Msg: err.Error()}
	}
	*c = yamlClimb(k)
	return nil
}

type yamlColor world.Color

func (c yamlColor) MarshalYAML() (any, error) {
	return world.Color(c).Hex(), nil
}

func (c *yamlColor) UnmarshalYAML(value *yaml.Node) error {
	var r, g, b uint8
	if len(value.Value) != 7 {
		return &ParseError{Line: value.Line, Msg: fmt.Sprintf("color %q: want #rrggbb", value.Value)}
	}
	if _, err := fmt.Sscanf(value.Value, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return &ParseError{Line: value.Line, Msg: fmt.Sprintf("color %q: want #rrggbb", value.Value)}
	}
	*c = yamlColor{R: r, G: g, B: b}
	return nil
}

// ParseYAML parses a YAML level file. An inline id, when present, must match.
func ParseYAML(id int, data []byte) (*world.Map, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return nil, pe
		}
		return nil, &ParseError{Msg: fmt.Sprintf("yaml unmarshal: %v", err)}
	}
	if yl.ID != 0 && yl.ID != id {
		return nil, &ParseError{Msg: fmt.Sprintf("file declares map %d, expected %d", yl.ID, id)}
	}

	edges := world.EdgeWarps{
		Left:  derefOr(yl.Edges.Left, world.NoEdge),
		Right: derefOr(yl.Edges.Right, world.NoEdge),
		Up:    derefOr(yl.Edges.Up, world.NoEdge),
		Down:  derefOr(yl.Edges.Down, world.NoEdge),
	}

	shapes := make([]world.Shape, len(yl.Shapes))
	for i, ys := range yl.Shapes {
		s := world.Shape{
			Rect:      world.Rect{Left: ys.X, Top: ys.Y, Width: ys.W, Height: ys.H},
			Collision: world.CollisionKind(ys.Collision),
			Climb:     world.ClimbKind(ys.Climb),
			Color:     world.Color(ys.Color),
		}
		if ys.Warp != nil {
			if s.Climb != world.NoClimb {
				return nil, &ParseError{Msg: fmt.Sprintf("shape %d: has both climb %s and warp %d", i, s.Climb, *ys.Warp)}
			}
			s.HasWarp = true
			s.Warp = *ys.Warp
		}
		shapes[i] = s
	}

	warps := make([]world.Warp, len(yl.Warps))
	for i, yw := range yl.Warps {
		warps[i] = world.Warp{Map: derefOr(yw.Map, id), X: yw.X, Y: yw.Y}
	}

	return world.New(id, yl.Size.W, yl.Size.H, yl.Spawn.X, yl.Spawn.Y, edges, shapes, warps), nil
}

// EncodeYAML writes m in the YAML level format.
func EncodeYAML(m *world.Map) ([]byte, error) {
	yl := YAMLLevel{
		ID:    m.ID,
		Size:  YAMLSize{W: m.Width, H: m.Height},
		Spawn: YAMLPoint{X: m.SpawnX, Y: m.SpawnY},
		Edges: YAMLEdges{
			Left:  edgePtr(m.Edges.Left),
			Right: edgePtr(m.Edges.Right),
			Up:    edgePtr(m.Edges.Up),
			Down:  edgePtr(m.Edges.Down),
		},
	}
	for _, s := range m.Shapes() {
		ys := YAMLShape{
			X: s.Left, Y: s.Top, W: s.Width, H: s.Height,
			Collision: yamlCollision(s.Collision),
			Climb:     yamlClimb(s.Climb),
			Color:     yamlColor(s.Color),
		}
		if s.HasWarp {
			w := s.Warp
			ys.Warp = &w
		}
		yl.Shapes = append(yl.Shapes, ys)
	}
	for _, w := range m.Warps() {
		target := w.Map
		yl.Warps = append(yl.Warps, YAMLWarp{Map: &target, X: w.X, Y: w.Y})
	}

	out, err := yaml.Marshal(&yl)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return out, nil
}

func derefOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func edgePtr(id int) *int {
	if id == world.NoEdge {
		return nil
	}
	return &id
}
