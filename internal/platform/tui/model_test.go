package tui

import (
	"maps"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// fakeGame records what the model feeds it.
type fakeGame struct {
	resets     int
	steps      []core.InputFrame
	state      core.GameState
	fillBottom bool // Render also writes the last screen row
}

// recordFrame copies in, since the model clears and reuses its frame.
func recordFrame(in core.InputFrame) core.InputFrame {
	rec := core.InputFrame{Actions: maps.Clone(in.Actions)}
	if x, y, ok := in.Pointer(); ok {
		rec.SetPointer(x, y)
	}
	return rec
}

func (f *fakeGame) ID() string { return "fake" }
func (f *fakeGame) Title() string { return "Fake" }
func (f *fakeGame) Reset(core.RuntimeConfig) { f.resets++ }
func (f *fakeGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "fake")
	if f.fillBottom {
		dst.DrawText(0, dst.Height()-1, "status")
	}
}
func (f *fakeGame) State() core.GameState { return f.state }
func (f *fakeGame) lastStep() core.InputFrame { return f.steps[len(f.steps)-1] }
func (f *fakeGame) Step(in core.InputFrame) core.StepResult {
	f.steps = append(f.steps, recordFrame(in))
	return core.StepResult{State: f.state}
}

var testConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}

func newTestModel(game *fakeGame, store *storage.Store) GameModel {
	m := NewGameModel(game, store, testConfig, nil)
	m.Init()
	return m
}

func send(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected GameModel", next)
	}
	return gm, cmd
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	m, _ = send(t, m, TickMsg{Ticker: m.id})
	return m
}

func TestGameModelFeedsKeysToStep(t *testing.T) {
	game := &fakeGame{}
	m := newTestModel(game, nil)
	if game.resets != 1 {
		t.Fatalf("Init() reset the game %d times, expected 1", game.resets)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = tick(t, m)

	if len(game.steps) != 1 {
		t.Fatalf("Step() called %d times, expected 1", len(game.steps))
	}
	in := game.lastStep()
	if !in.Has(core.ActionLeft) || !in.Has(core.ActionDrop) {
		t.Errorf("Step() input = %v, expected Left and Drop", in.Actions)
	}

	// Input is cleared between frames
	tick(t, m)
	if in := game.lastStep(); len(in.Actions) != 0 {
		t.Errorf("second Step() input = %v, expected empty", in.Actions)
	}
}

func TestGameModelIgnoresForeignTicks(t *testing.T) {
	game := &fakeGame{}
	m := newTestModel(game, nil)

	m, cmd := send(t, m, TickMsg{Ticker: m.id + 1000})
	if cmd != nil {
		t.Error("foreign tick scheduled another tick")
	}
	if len(game.steps) != 0 {
		t.Errorf("foreign tick stepped the game %d times", len(game.steps))
	}

	_, cmd = send(t, m, TickMsg{Ticker: m.id})
	if cmd == nil {
		t.Error("own tick did not schedule the next tick")
	}
}

func TestGameModelPointer(t *testing.T) {
	game := &fakeGame{}
	m := newTestModel(game, nil)

	m, _ = send(t, m, tea.MouseMsg{X: 30, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	m = tick(t, m)
	m = tick(t, m)

	// The pointer stays in effect until it moves or the keyboard takes over
	x, y, ok := game.lastStep().Pointer()
	if !ok || x != 30 || y != 5 {
		t.Errorf("Pointer() = (%d, %d, %v), expected (30, 5, true)", x, y, ok)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	tick(t, m)
	if _, _, ok := game.lastStep().Pointer(); ok {
		t.Error("pointer still active after a keyboard move")
	}
}

func TestGameModelMouseClickDrops(t *testing.T) {
	game := &fakeGame{}
	m := newTestModel(game, nil)

	m, _ = send(t, m, tea.MouseMsg{X: 10, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	tick(t, m)

	if !game.lastStep().Has(core.ActionDrop) {
		t.Error("left click did not hard drop")
	}
}

func TestGameModelBack(t *testing.T) {
	game := &fakeGame{}
	m := newTestModel(game, nil)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("Back left a running game")
	}

	game.state.Paused = true
	m = tick(t, m)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("Back did not leave a paused game")
	}
	if cmd != nil {
		t.Error("Back inside a session should not quit the program")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newTestModel(&fakeGame{}, nil)

	m, cmd := send(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("IsQuitting() = false after q")
	}
	if cmd == nil {
		t.Error("q did not return a quit command")
	}
	if m.View() != "" {
		t.Error("View() not empty after quitting")
	}
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	game := &fakeGame{}
	m := newTestModel(game, nil)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if game.resets != 1 {
		t.Errorf("resize reset the game (%d resets)", game.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, expected 100x40", m.screen.Width(), m.screen.Height())
	}
}

func TestGameModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	game := &fakeGame{}
	m := newTestModel(game, store)
	m = tick(t, m)

	game.state = core.GameState{Score: 500, Lines: 3, GameOver: true}
	for range 5 {
		m = tick(t, m)
	}

	scores, err := store.TopScores("fake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, expected 1", len(scores))
	}
	if scores[0].Score != 500 || scores[0].Lines != 3 {
		t.Errorf("saved %d/%d, expected 500/3", scores[0].Score, scores[0].Lines)
	}

	// A restart followed by another game over saves again
	game.state = core.GameState{}
	m = tick(t, m)
	game.state = core.GameState{Score: 100, Lines: 1, GameOver: true}
	tick(t, m)

	scores, _ = store.TopScores("fake", 10)
	if len(scores) != 2 {
		t.Errorf("saved %d scores after second game, expected 2", len(scores))
	}
}

func TestGameModelSkipsZeroScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	game := &fakeGame{state: core.GameState{GameOver: true}}
	m := newTestModel(game, store)
	tick(t, m)

	if high, _ := store.HighScore("fake"); high != 0 {
		t.Errorf("HighScore() = %d, expected nothing saved", high)
	}
	if scores, _ := store.AllScores("fake"); len(scores) != 0 {
		t.Errorf("saved %d zero-score games", len(scores))
	}
}

func TestGameModelDrawsKeyHelp(t *testing.T) {
	m := newTestModel(&fakeGame{}, nil)

	m.View()
	bottom := m.screen.Row(m.screen.Height() - 1)
	if !strings.Contains(bottom, "move left") || !strings.Contains(bottom, "rotate") {
		t.Errorf("bottom row = %q, expected the short key help", bottom)
	}
	// Leading spaces are one byte each, so this is also the screen column
	x := strings.IndexFunc(bottom, func(r rune) bool { return r != ' ' })
	if cell := m.screen.GetCell(x, m.screen.Height()-1); cell.Color != core.ColorGray {
		t.Errorf("help color = %v, expected %v", cell.Color, core.ColorGray)
	}
}

func TestGameModelKeepsGameBottomRow(t *testing.T) {
	m := newTestModel(&fakeGame{fillBottom: true}, nil)

	m.View()
	bottom := m.screen.Row(m.screen.Height() - 1)
	if strings.Contains(bottom, "move left") {
		t.Errorf("key help drawn over the game: %q", bottom)
	}
	if !strings.HasPrefix(bottom, "status") {
		t.Errorf("bottom row = %q, expected the game's text", bottom)
	}
}
