package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/littleman/internal/storage"
)

// maxSessions is how many sessions the history screen loads.
const maxSessions = 100

// historyView selects the table shown on the history screen.
type historyView int

const (
	viewSessions historyView = iota
	viewMaps
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right"),
			key.WithHelp("tab", "sessions/maps"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the play history screen.
type HistoryModel struct {
	store     *storage.Store
	view      historyView
	sessions  []storage.Session
	mapStats  []storage.MapStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	now       func() time.Time
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a new history model and loads the journal.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
		now:    time.Now,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// load reads sessions and map statistics from the store.
func (m *HistoryModel) load() {
	if m.store == nil {
		return
	}
	sessions, err := m.store.RecentSessions(maxSessions)
	if err != nil {
		m.loadErr = err
		return
	}
	stats, err := m.store.AllMapStats()
	if err != nil {
		m.loadErr = err
		return
	}
	m.sessions = sessions
	m.mapStats = stats
}

// columns returns the columns of the current view.
func (m *HistoryModel) columns() []table.Column {
	if m.view == viewMaps {
		return []table.Column{
			{Title: "Map", Width: 6},
			{Title: "Visits", Width: 8},
			{Title: "Sessions", Width: 9},
			{Title: "Last visit", Width: 16},
		}
	}
	return []table.Column{
		{Title: "Started", Width: 16},
		{Title: "Player", Width: 12},
		{Title: "Map", Width: 5},
		{Title: "Maps", Width: 5},
		{Title: "Played", Width: 12},
		{Title: "Moves", Width: 8},
		{Title: "Warps", Width: 6},
	}
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the loaded journal.
func (m *HistoryModel) updateTableRows() {
	now := m.now()
	var rows []table.Row
	if m.view == viewMaps {
		rows = make([]table.Row, len(m.mapStats))
		for i, s := range m.mapStats {
			rows[i] = table.Row{
				fmt.Sprintf("%d", s.MapID),
				humanize.Comma(int64(s.Visits)),
				humanize.Comma(int64(s.Sessions)),
				humanize.RelTime(s.LastVisit, now, "ago", "from now"),
			}
		}
	} else {
		rows = make([]table.Row, len(m.sessions))
		for i, s := range m.sessions {
			rows[i] = table.Row{
				humanize.RelTime(s.StartedAt, now, "ago", "from now"),
				s.Player,
				fmt.Sprintf("%d", s.StartMap),
				fmt.Sprintf("%d", s.MapsVisited),
				playedFor(s),
				humanize.Comma(int64(s.Moves)),
				humanize.Comma(int64(s.Warps)),
			}
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// playedFor describes a session's length.
func playedFor(s storage.Session) string {
	if s.EndedAt.IsZero() {
		return "open"
	}
	return strings.TrimSpace(humanize.RelTime(s.StartedAt, s.EndedAt, "", ""))
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Switch):
			if m.view == viewSessions {
				m.view = viewMaps
			} else {
				m.view = viewSessions
			}
			// Column count changes, so rows must go before the columns do.
			m.table.SetRows(nil)
			m.table.SetColumns(m.columns())
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "PLAY HISTORY - sessions"
	if m.view == viewMaps {
		title = "PLAY HISTORY - maps"
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an explanation of why it is empty.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("The play journal is not available.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read the play journal:\n" + m.loadErr.Error())
	case len(m.sessions) == 0:
		return emptyStyle.Render("Nothing played yet.\nStart a game to fill the journal!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewHistoryModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
