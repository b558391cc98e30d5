// Package game implements littleman: a single character walking, jumping
// and climbing through level maps. It drives the physics state from input
// frames and paints it into a core.Screen.
package game

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/littleman/internal/core"
	"github.com/vovakirdan/littleman/internal/physics"
	"github.com/vovakirdan/littleman/internal/world"
)

// noticeTicks is how long a HUD notice stays up.
const noticeTicks = 90

// Options configure a new Game.
type Options struct {
	StartMap int
	Tuning   physics.Tuning
}

// Stats counts what happened during a session. It feeds the play journal.
type Stats struct {
	Ticks    int
	Moves    int
	Warps    int
	Failures int
	Respawns int
	Reloads  int
}

// Game implements the littleman game logic.
type Game struct {
	state   *physics.State
	runtime core.RuntimeConfig
	log     *log.Logger

	camera Camera
	hitbox bool
	paused bool
	quit   bool
	back   bool

	notice     string
	noticeLeft int

	stats Stats
}

// New loads the start map and places the character on its spawn point.
func New(maps physics.MapSource, opts Options, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	state, err := physics.New(maps, opts.StartMap, opts.Tuning, logger.WithPrefix("physics"))
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	g := &Game{
		state: state,
		log:   logger,
	}
	g.Reset(core.DefaultConfig())
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "littleman"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Littleman"
}

// Reset applies the runtime config and puts the character back on the
// spawn point of the current map.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.ScaleX < 1 {
		runtime.ScaleX = 1
	}
	if runtime.ScaleY < 1 {
		runtime.ScaleY = 1
	}
	if runtime.TickRate < 1 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime
	g.hitbox = runtime.Hitbox
	g.paused = false
	g.quit = false
	g.back = false
	g.notice = ""
	g.noticeLeft = 0
	g.camera = NewCamera(runtime.ScaleX, runtime.ScaleY)
	g.state.Respawn()
	g.state.DrainEvents()
}

// Resize updates the screen size used for rendering.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
}

// Physics exposes the simulation for inspection.
func (g *Game) Physics() *physics.State {
	return g.state
}

// Stats returns the session counters.
func (g *Game) Stats() Stats {
	return g.stats
}

// HitboxVisible reports whether the hit box overlay is drawn.
func (g *Game) HitboxVisible() bool {
	return g.hitbox
}

// Step advances the game by one frame: queued moves are applied in
// arrival order, then the clock advances by one frame period.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var entered []int

	for _, a := range in.Actions {
		switch a {
		case core.ActionQuit:
			g.quit = true
		case core.ActionBack:
			g.back = true
		case core.ActionPause:
			g.paused = !g.paused
		case core.ActionHitbox:
			g.hitbox = !g.hitbox
		case core.ActionRespawn:
			if !g.paused {
				g.state.Respawn()
				g.stats.Respawns++
				g.say(fmt.Sprintf("respawned on map %d", g.state.Map().ID))
			}
		default:
			cmd, ok := commandFor(a)
			if !ok || g.paused {
				continue
			}
			g.state.Move(cmd)
			g.stats.Moves++
			entered = append(entered, g.handleEvents()...)
		}
	}

	if !g.paused {
		g.stats.Ticks++
		g.state.Advance(time.Second / time.Duration(g.runtime.TickRate))
		entered = append(entered, g.handleEvents()...)
	}
	if g.noticeLeft > 0 {
		g.noticeLeft--
	}

	return core.StepResult{State: g.State(), Entered: entered}
}

// Reload swaps in a fresh copy of the active map after its file changed.
// Maps other than the active one are ignored.
func (g *Game) Reload(m *world.Map) bool {
	if !g.state.Reload(m) {
		return false
	}
	g.handleEvents()
	return true
}

// commandFor maps directional actions onto physics commands.
func commandFor(a core.Action) (physics.Command, bool) {
	if !a.Directional() {
		return 0, false
	}
	switch a {
	case core.ActionLeft:
		return physics.CmdLeft, true
	case core.ActionRight:
		return physics.CmdRight, true
	case core.ActionUp:
		return physics.CmdUp, true
	case core.ActionDown:
		return physics.CmdDown, true
	case core.ActionShift:
		return physics.CmdShift, true
	case core.ActionRelease:
		return physics.CmdRelease, true
	}
	return 0, false
}

// handleEvents drains physics events into the counters and the HUD notice
// and returns the maps entered.
func (g *Game) handleEvents() []int {
	var entered []int
	for _, e := range g.state.DrainEvents() {
		switch e.Kind {
		case physics.EventEdgeWarp:
			g.stats.Warps++
			if e.MapID != e.FromMap {
				entered = append(entered, e.MapID)
				g.say(fmt.Sprintf("map %d", e.MapID))
			}
		case physics.EventNormWarp:
			g.stats.Warps++
			if e.MapID != e.FromMap {
				entered = append(entered, e.MapID)
			}
			g.say(fmt.Sprintf("warped to map %d", e.MapID))
		case physics.EventReloaded:
			g.stats.Reloads++
			g.log.Info("map reloaded", "map", e.MapID)
			g.say(fmt.Sprintf("map %d reloaded", e.MapID))
		case physics.EventTransitionFailed:
			g.stats.Failures++
			g.say("the way is blocked: " + e.Err.Error())
		case physics.EventLanded:
		}
	}
	return entered
}

func (g *Game) say(msg string) {
	g.notice = msg
	g.noticeLeft = noticeTicks
}

// Notice returns the HUD message currently shown, if any.
func (g *Game) Notice() string {
	if g.noticeLeft == 0 {
		return ""
	}
	return g.notice
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	c := g.state.Character()
	return core.GameState{
		MapID:  g.state.Map().ID,
		X:      c.X,
		Y:      c.Y,
		Mode:   g.state.Mode().String(),
		Paused: g.paused,
		Quit:   g.quit,
		Back:   g.back,
	}
}
