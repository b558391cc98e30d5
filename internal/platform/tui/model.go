package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/littleman/internal/core"
	"github.com/vovakirdan/littleman/internal/game"
	"github.com/vovakirdan/littleman/internal/level"
	"github.com/vovakirdan/littleman/internal/storage"
)

// Options configure a game model.
type Options struct {
	Game   *game.Game
	Maps   *level.Loader
	Store  *storage.Store // nil disables the play journal
	Player string
	Config core.RuntimeConfig
	// Changes delivers ids of level files changed on disk. Optional.
	Changes <-chan int
	Logger  *log.Logger
}

// Model is the Bubble Tea model for playing littleman.
type Model struct {
	game       *game.Game
	maps       *level.Loader
	screen     *core.Screen
	config     core.RuntimeConfig
	changes    <-chan int
	log        *log.Logger
	journal    *journal
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// NewModel creates a game model and opens a journal session for it.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == "" {
		player = "local"
	}

	cfg := opts.Config
	opts.Game.Reset(cfg)
	state := opts.Game.State()

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       opts.Game,
		maps:       opts.Maps,
		screen:     core.NewScreen(cfg.ScreenW, playRows(cfg.ScreenH)),
		config:     cfg,
		changes:    opts.Changes,
		log:        logger,
		journal:    startJournal(opts.Store, player, state.MapID, logger),
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		gameState:  state,
	}
	m.game.Resize(m.screen.Width(), m.screen.Height())
	return m
}

// playRows leaves the last terminal row for the key help.
func playRows(height int) int {
	return max(height-1, 1)
}

// Init starts the tick loop and, when enabled, the level watch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), watchCmd(m.changes))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case MapChangedMsg:
		m.reloadMap(msg.MapID)
		return m, watchCmd(m.changes)
	}

	return m, nil
}

// handleKey queues the action for the next tick. Quit leaves at once.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.journal.end(m.game.Stats())
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. The game keeps its state.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playRows(msg.Height))
	m.game.Resize(m.screen.Width(), m.screen.Height())
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one simulation step with the queued input.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()
	m.journal.visit(result.Entered)

	if m.gameState.Quit {
		m.quitting = true
		m.journal.end(m.game.Stats())
		return m, tea.Quit
	}
	if m.gameState.Back {
		m.backToMenu = true
		m.journal.end(m.game.Stats())
		return m, nil
	}

	return m, tickCmd(m.config.TickRate)
}

// reloadMap re-reads a changed level file. Only the active map matters to
// the running game; other maps are picked up on their next load.
func (m Model) reloadMap(id int) {
	if m.maps == nil {
		return
	}
	fresh, err := m.maps.Reload(id)
	if err != nil {
		m.log.Warn("changed map not reloaded", "map", id, "err", err)
		return
	}
	m.game.Reload(fresh)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Stats returns the counters of the game being played.
func (m Model) Stats() game.Stats {
	return m.game.Stats()
}

// Run starts the Bubble Tea program for one game.
// It returns true when the player asked for the menu rather than to quit.
func Run(opts Options) (backToMenu bool, err error) {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		// A killed program never reaches quit; close the session anyway.
		fm.journal.end(fm.game.Stats())
		return fm.BackToMenu(), err
	}
	model.journal.end(model.game.Stats())
	return false, err
}
