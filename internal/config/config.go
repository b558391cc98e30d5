// Package config provides YAML-based configuration loading for littleman:
// physics tuning, render scale, file locations and the play loop rate.
package config

import "github.com/vovakirdan/littleman/internal/physics"

// Config contains all configuration for the game and its tooling.
type Config struct {
	Physics physics.Tuning `yaml:"physics"`
	Render  RenderConfig   `yaml:"render"`
	Paths   PathsConfig    `yaml:"paths"`
	Game    GameConfig     `yaml:"game"`
}

// RenderConfig defines how map pixels become terminal cells.
type RenderConfig struct {
	ScaleX int  `yaml:"scale_x"` // map pixels per cell, horizontally
	ScaleY int  `yaml:"scale_y"` // map pixels per cell, vertically
	Hitbox bool `yaml:"hitbox"`  // draw the hit box overlay at start
	HUD    bool `yaml:"hud"`
}

// PathsConfig locates files on disk. A leading ~ is expanded.
type PathsConfig struct {
	Maps string `yaml:"maps"` // level directory; empty uses the built-in maps
	DB   string `yaml:"db"`
	Log  string `yaml:"log"`
}

// GameConfig defines the play loop.
type GameConfig struct {
	StartMap int  `yaml:"start_map"`
	FPS      int  `yaml:"fps"`
	Watch    bool `yaml:"watch"` // reload level files when they change
}
