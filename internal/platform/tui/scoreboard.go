package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

const (
	scoreLimit       = 50 // Rows loaded per mode
	statsPanelWidth  = 24
	wideScoreboardAt = 72 // Narrower terminals get the stats as one line under the table
)

var (
	modeTabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	modeTabActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	panelStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	statLabelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statValueStyle     = lipgloss.NewStyle().Bold(true)
	noScoresStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
	loadErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Padding(1, 2)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevMode key.Binding
	NextMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevMode, k.NextMode, k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.PrevMode, k.NextMode}, {k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns the scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		PrevMode: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "prev mode")),
		NextMode: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l/tab", "next mode")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best games of one mode at a time together with
// that mode's lifetime stats.
type ScoreboardModel struct {
	modes   []registry.GameInfo
	mode    int
	store   *storage.Store
	entries []storage.ScoreEntry
	stats   storage.GameStats
	loadErr error

	table  table.Model
	keys   ScoreboardKeyMap
	help   help.Model
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard for every registered mode. A nil
// store shows empty tables.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = newScoreTable(height)
	m.reload()
	return m
}

// newScoreTable builds the score table sized to leave room for the title,
// mode tabs and help line.
func newScoreTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 9},
			{Title: "Lines", Width: 6},
			{Title: "Played", Width: 13},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
	)

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

// currentMode returns the ID of the mode on display, or "" when none are
// registered.
func (m ScoreboardModel) currentMode() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.mode].ID
}

// reload reads the scores and stats of the current mode.
func (m *ScoreboardModel) reload() {
	id := m.currentMode()
	m.entries, m.loadErr = nil, nil
	m.stats = storage.GameStats{GameID: id}

	if m.store != nil && id != "" {
		entries, err := m.store.TopScores(id, scoreLimit)
		if err == nil {
			var stats *storage.GameStats
			stats, err = m.store.GetGameStats(id)
			if err == nil {
				m.stats = *stats
			}
		}
		m.entries, m.loadErr = entries, err
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(e.Score),
			fmt.Sprint(e.Lines),
			e.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycleMode moves to the previous (-1) or next (+1) mode, wrapping around.
func (m *ScoreboardModel) cycleMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + delta + len(m.modes)) % len(m.modes)
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevMode):
			m.cycleMode(-1)
			return m, nil
		case key.Matches(msg, m.keys.NextMode):
			m.cycleMode(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-10, 3))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(menuTitleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.viewModeTabs(), m.width))
	b.WriteString("\n\n")

	scores := panelStyle.Render(m.viewScores())
	if m.width >= wideScoreboardAt {
		stats := panelStyle.Width(statsPanelWidth).Render(m.viewStatsPanel())
		b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, scores, "  ", stats), m.width))
	} else {
		b.WriteString(scores)
		b.WriteString("\n")
		b.WriteString(m.viewStatsLine())
	}

	b.WriteString("\n")
	b.WriteString(menuHintStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// viewModeTabs renders one tab per mode with the current one highlighted.
func (m ScoreboardModel) viewModeTabs() string {
	tabs := make([]string, len(m.modes))
	for i, mode := range m.modes {
		if i == m.mode {
			tabs[i] = modeTabActiveStyle.Render(mode.Title)
		} else {
			tabs[i] = modeTabStyle.Render(mode.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m ScoreboardModel) viewScores() string {
	switch {
	case m.loadErr != nil:
		return loadErrorStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.entries) == 0:
		return noScoresStyle.Render("No games recorded yet.\nFinish a game to set a high score!")
	}
	return m.table.View()
}

// statRows returns the label/value pairs shown for the current mode.
func (m ScoreboardModel) statRows() [][2]string {
	last := "never"
	if !m.stats.LastPlayed.IsZero() {
		last = m.stats.LastPlayed.Local().Format("Jan 02 15:04")
	}
	return [][2]string{
		{"Games", fmt.Sprint(m.stats.GamesCount)},
		{"Best score", fmt.Sprint(m.stats.HighScore)},
		{"Best lines", fmt.Sprint(m.stats.BestLines)},
		{"Avg score", fmt.Sprintf("%.0f", m.stats.AvgScore)},
		{"Total lines", fmt.Sprint(m.stats.TotalLines)},
		{"Last game", last},
	}
}

func (m ScoreboardModel) viewStatsPanel() string {
	var b strings.Builder
	b.WriteString(statValueStyle.Render("Stats"))
	for _, row := range m.statRows() {
		fmt.Fprintf(&b, "\n%s %s", statLabelStyle.Render(fmt.Sprintf("%-11s", row[0])), statValueStyle.Render(row[1]))
	}
	return b.String()
}

func (m ScoreboardModel) viewStatsLine() string {
	rows := m.statRows()[:4]
	parts := make([]string, len(rows))
	for i, row := range rows {
		parts[i] = statLabelStyle.Render(strings.ToLower(row[0])+" ") + statValueStyle.Render(row[1])
	}
	return strings.Join(parts, statLabelStyle.Render(" · "))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard on its own and reports whether the user
// backed out rather than quit.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
