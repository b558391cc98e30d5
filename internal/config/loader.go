package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search directories.
const FileName = "littleman.yaml"

// Load loads the configuration and clamps out-of-range values.
// Search order: customPath -> ~/.littleman/configs/littleman.yaml ->
// ./configs/littleman.yaml -> embedded default -> DefaultConfig().
// Only an explicit customPath that cannot be read or parsed is an error.
func Load(customPath string, logger *log.Logger) (Config, error) {
	var candidates []string
	if p := userConfigPath(FileName); p != "" {
		candidates = append(candidates, p)
	}
	candidates = append(candidates, filepath.Join("configs", FileName))
	return load(customPath, candidates, logger)
}

func load(customPath string, candidates []string, logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cfg, source, err := resolve(customPath, candidates, logger)
	if err != nil {
		return cfg, err
	}
	logger.Debug("configuration loaded", "source", source)

	cfg, notes := cfg.Sanitize()
	for _, n := range notes {
		logger.Warn("config value adjusted", "source", source, "change", n)
	}
	return cfg, nil
}

func resolve(customPath string, candidates []string, logger *log.Logger) (Config, string, error) {
	// Try custom path first
	if customPath != "" {
		path := ExpandPath(customPath)
		data, err := os.ReadFile(path)
		if err != nil {
			return DefaultConfig(), "", fmt.Errorf("failed to read config %s: %w", path, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultConfig(), "", fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return cfg, path, nil
	}

	// Then the user and local configs directories
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logger.Warn("config file unreadable, skipping", "path", path, "err", err)
			}
			continue
		}
		cfg, err := Parse(data)
		if err != nil {
			logger.Warn("config file invalid, skipping", "path", path, "err", err)
			continue
		}
		return cfg, path, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), "built-in", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

// Parse decodes YAML on top of DefaultConfig, so omitted keys keep their defaults.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Sanitize clamps every value to its valid range and describes each change.
func (c Config) Sanitize() (Config, []string) {
	physics, notes := c.Physics.Sanitize()
	c.Physics = physics

	atLeast := func(name string, v *int, min int) {
		if *v < min {
			notes = append(notes, fmt.Sprintf("%s=%d raised to %d", name, *v, min))
			*v = min
		}
	}
	atLeast("render.scale_x", &c.Render.ScaleX, 1)
	atLeast("render.scale_y", &c.Render.ScaleY, 1)
	atLeast("game.start_map", &c.Game.StartMap, 0)
	atLeast("game.fps", &c.Game.FPS, 1)
	if c.Game.FPS > 120 {
		notes = append(notes, fmt.Sprintf("game.fps=%d lowered to 120", c.Game.FPS))
		c.Game.FPS = 120
	}
	return c, notes
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".littleman", "configs", filename)
}
