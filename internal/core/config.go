package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frames per second delivered by the platform
	ScaleX   int // Map pixels per cell, horizontally
	ScaleY   int // Map pixels per cell, vertically
	Hitbox   bool
	HUD      bool
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		ScaleX:   4,
		ScaleY:   8,
		HUD:      true,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	MapID  int
	X, Y   int
	Mode   string
	Paused bool
	Quit   bool // the player asked to leave
	Back   bool // the player asked for the menu
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Entered lists the maps entered during this tick, in order.
	Entered []int
}
