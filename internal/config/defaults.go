package config

import (
	_ "embed"

	"github.com/vovakirdan/littleman/internal/physics"
)

//go:embed defaults/littleman.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded configuration.
func DefaultConfig() Config {
	return Config{
		Physics: physics.DefaultTuning(),
		Render: RenderConfig{
			ScaleX: 4,
			ScaleY: 8,
			HUD:    true,
		},
		Paths: PathsConfig{
			DB:  "~/.littleman/journal.db",
			Log: "~/.littleman/littleman.log",
		},
		Game: GameConfig{
			StartMap: 4,
			FPS:      30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
