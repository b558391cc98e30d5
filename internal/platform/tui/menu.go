package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/littleman/internal/core"
	"github.com/vovakirdan/littleman/internal/level"
)

// MenuItem represents a selectable map in the menu.
type MenuItem struct {
	MapID  int
	Title  string
	Detail string
	Broken bool // the map failed to load and cannot be picked
}

// MenuModel is the Bubble Tea model for the start map picker.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	width       int
	height      int
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	quitting    bool
	selected    *MenuItem // Set when user selects a map
	openHistory bool      // True if user pressed Tab for the history
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuBrokenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
)

// MenuItems lists the maps a loader can serve, loading each one to
// describe it. Maps that fail to load are listed as broken.
func MenuItems(maps *level.Loader) ([]MenuItem, error) {
	ids, err := maps.ListIDs()
	if err != nil {
		return nil, err
	}
	items := make([]MenuItem, 0, len(ids))
	for _, id := range ids {
		item := MenuItem{MapID: id, Title: fmt.Sprintf("Map %d", id)}
		m, err := maps.Load(id)
		if err != nil {
			item.Broken = true
			item.Detail = "broken"
		} else {
			item.Detail = fmt.Sprintf("%dx%d, %d shapes, %d warps", m.Width, m.Height, m.ShapeCount(), m.WarpCount())
		}
		if id == level.DefaultStartMap {
			item.Title += " (start)"
		}
		items = append(items, item)
	}
	return items, nil
}

// NewMenuModel creates a new menu model. The cursor starts on startMap
// when it is listed.
func NewMenuModel(items []MenuItem, startMap int, cfg core.RuntimeConfig) MenuModel {
	cursor := 0
	for i, it := range items {
		if it.MapID == startMap {
			cursor = i
			break
		}
	}
	return MenuModel{
		items:     items,
		cursor:    cursor,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 && !m.items[m.cursor].Broken {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionHistory:
		m.openHistory = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("L I T T L E M A N"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Pick a start map", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(menuMutedStyle.Render("No maps found."), m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		line := fmt.Sprintf("  %-14s %s", item.Title, item.Detail)
		switch {
		case i == m.cursor:
			line = menuCursorStyle.Render("> " + line[2:])
		case item.Broken:
			line = menuBrokenStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: History  |  Q: Quit"
	b.WriteString(centerText(menuMutedStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the play history.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	MapID        int
	Config       core.RuntimeConfig
	WantsHistory bool
	Quit         bool
}

// RunMenu runs the map picker and returns the selection result.
func RunMenu(maps *level.Loader, startMap int, cfg core.RuntimeConfig) (MenuResult, error) {
	items, err := MenuItems(maps)
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	model := NewMenuModel(items, startMap, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsHistory():
		result.WantsHistory = true
	case m.Selected() != nil:
		result.MapID = m.Selected().MapID
	default:
		result.Quit = true
	}

	return result, nil
}
