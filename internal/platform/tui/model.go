package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// pointer is the last known mouse position, kept between frames because the
// terminal only reports motion.
type pointer struct {
	x, y   int
	active bool
}

// GameModel is the Bubble Tea model for one running game. It is used on its
// own by `blockfall play` and inside SessionModel by the menu and SSH flows.
type GameModel struct {
	id         uint64 // Tags this model's ticks
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	pointer    pointer
	gameState  core.GameState

	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the score has been saved for the current game over
}

// NewGameModel creates a game model. A nil logger discards log output.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		id:         nextTickerID(),
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger.With("game", game.ID()),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       newScreenHelp(),
		inputFrame: core.NewInputFrame(),
	}
}

// newScreenHelp returns a help view with unstyled output, since its text is
// written into screen cells.
func newScreenHelp() help.Model {
	h := help.New()
	plain := lipgloss.NewStyle()
	h.Styles = help.Styles{
		Ellipsis:       plain,
		ShortKey:       plain,
		ShortDesc:      plain,
		ShortSeparator: plain,
		FullKey:        plain,
		FullDesc:       plain,
		FullSeparator:  plain,
	}
	return h
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("game started", "seed", m.config.Seed, "size", fmt.Sprintf("%dx%d", m.config.ScreenW, m.config.ScreenH))
	return tickCmd(m.id, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Ticker != m.id {
			// Left over from an earlier game in the same session
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		// Back only leaves a game that is not in play
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
		return m, nil

	case core.ActionLeft, core.ActionRight:
		// Keyboard movement takes over from the mouse
		m.pointer.active = false
	}

	m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleMouse tracks the pointer for steering and maps button presses.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionMotion, tea.MouseActionPress:
		m.pointer = pointer{x: msg.X, y: msg.Y, active: true}
	}

	if action := m.keyMapper.MapMouse(msg); action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize resizes the screen. The game keeps running and lays itself out
// again on the next render.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.pointer.active {
		m.inputFrame.SetPointer(m.pointer.x, m.pointer.y)
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case m.gameState.GameOver && !wasOver:
		m.logger.Info("game over",
			"score", m.gameState.Score,
			"lines", m.gameState.Lines,
			"level", m.gameState.Level,
		)
		m.saveScore()
	case !m.gameState.GameOver && wasOver:
		// Restarted after game over
		m.scoreSaved = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.id, m.config.TickRate)
}

// saveScore records the finished game once. Failures are logged and the game
// carries on.
func (m *GameModel) saveScore() {
	if m.scoreSaved || m.gameState.Score <= 0 {
		return
	}
	m.scoreSaved = true

	if m.store == nil {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score, m.gameState.Lines); err != nil {
		m.logger.Warn("could not save score", "error", err)
	}
}

// saveScreenshot writes the current screen as plain text under
// ~/.blockfall/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".blockfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	m.drawHelp()
	return RenderScreen(m.screen)
}

// drawHelp writes the short key help on the bottom row if the game left it
// empty.
func (m GameModel) drawHelp() {
	y := m.screen.Height() - 1
	if y < 0 || strings.TrimSpace(m.screen.Row(y)) != "" {
		return
	}
	m.help.Width = m.screen.Width()
	m.screen.DrawTextCentered(y, m.help.View(m.keyMapper.Keys()), core.ColorGray)
}

// State returns the game state as of the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the terminal until the user quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg, logger)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // Pointer steering needs motion without a pressed button
	)

	_, err := p.Run()
	return err
}
