package level

import (
	"github.com/vovakirdan/littleman/internal/registry"
	"github.com/vovakirdan/littleman/internal/world"
)

func init() {
	registry.Register(textFormat{})
	registry.Register(yamlFormat{})
}

// textFormat is the classic whitespace separated map format.
type textFormat struct{}

func (textFormat) Name() string         { return "text" }
func (textFormat) Extensions() []string { return []string{".txt"} }

func (textFormat) Decode(id int, data []byte) (*world.Map, error) {
	return ParseText(id, data)
}

func (textFormat) Encode(m *world.Map) ([]byte, error) {
	return EncodeText(m), nil
}

type yamlFormat struct{}

func (yamlFormat) Name() string         { return "yaml" }
func (yamlFormat) Extensions() []string { return []string{".yaml", ".yml"} }

func (yamlFormat) Decode(id int, data []byte) (*world.Map, error) {
	return ParseYAML(id, data)
}

func (yamlFormat) Encode(m *world.Map) ([]byte, error) {
	return EncodeYAML(m)
}
