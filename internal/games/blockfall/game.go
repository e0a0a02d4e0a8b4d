// Package blockfall adapts the falling-block engine to the platform's Game
// interface: it turns input frames into engine actions, drives the gravity
// clock, ramps the speed in marathon mode and draws everything to a Screen.
package blockfall

import (
	"math/rand"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// Mode selects how the gravity period evolves over a game.
type Mode string

const (
	ModeClassic  Mode = "classic"  // Gravity fixed by the difficulty preset
	ModeMarathon Mode = "marathon" // Gravity speeds up every ten lines
)

// Game identifiers used by the registry and the score database.
const (
	IDClassic  = "blockfall"
	IDMarathon = "blockfall_marathon"
)

// LinesPerLevel is how many cleared lines advance the marathon level.
const LinesPerLevel = 10

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// Game implements registry.Game on top of a tetris.Engine.
type Game struct {
	mode Mode

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.BlockfallConfig
	override   *config.BlockfallConfig // Bypasses file loading when set
	difficulty *config.DifficultyManager

	engine *tetris.Engine
	err    error // Engine construction failure, shown instead of the board
	rng    *rand.Rand

	tick         uint64
	paused       bool
	lastSoftDrop uint64 // Tick of the last soft drop, for soft drop pacing
	softDropped  bool

	layout layout
}

// New creates a classic mode game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewMarathon creates a marathon mode game.
func NewMarathon() *Game {
	return &Game{mode: ModeMarathon}
}

// NewWithConfig creates a game that uses cfg instead of loading configuration
// files. The difficulty preset set via CLI is not applied.
func NewWithConfig(mode Mode, cfg config.BlockfallConfig) *Game {
	return &Game{mode: mode, override: &cfg}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDMarathon, func() registry.Game {
		return NewMarathon()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeMarathon {
		return IDMarathon
	}
	return IDClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeMarathon {
		return "Blockfall (Marathon)"
	}
	return "Blockfall"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.cfg = g.loadConfig()

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	if g.mode == ModeClassic {
		// Classic keeps the preset's starting speed for the whole game
		g.difficulty.SetEnabled(false)
	}

	g.layout = computeLayout(g.cfg, runtime.ScreenW, runtime.ScreenH)
	g.start(runtime.Seed)
}

// loadConfig resolves the configuration for a new game.
func (g *Game) loadConfig() config.BlockfallConfig {
	if g.override != nil {
		return *g.override
	}

	cfg, err := config.LoadBlockfall(configPath)
	if err != nil {
		cfg = config.DefaultBlockfallConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyBlockfallPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// start builds a fresh engine and clears the per-game driver state.
func (g *Game) start(seed int64) {
	g.tick = 0
	g.paused = false
	g.lastSoftDrop = 0
	g.softDropped = false

	g.engine, g.err = tetris.New(g.cfg.Engine(seed))
	if g.err != nil {
		return
	}
	g.applyGravity()
}

// Step advances the game by one tick.
//
// Player actions are applied in a fixed order (pointer steering, left, right,
// rotate clockwise, rotate counter-clockwise, soft drop, hard drop) and are
// followed by exactly one engine tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if g.engine == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if input.Has(core.ActionRestart) {
		g.start(g.rng.Int63())
		return core.StepResult{State: g.State()}
	}

	over := g.engine.State() == tetris.StateGameOver

	// Handle pause toggle
	if input.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}

	if g.paused || over || g.layout.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	var result core.StepResult
	record := func(ev tetris.StepEvent) {
		if ev.Locked {
			result.Locked = true
			result.Cleared += ev.Cleared
		}
	}

	for _, a := range g.actions(input) {
		record(g.engine.Step(a))
	}
	record(g.engine.Step(tetris.ActionTick))
	g.applyGravity()

	result.State = g.State()
	return result
}

// actions converts an input frame into engine actions in application order.
func (g *Game) actions(input core.InputFrame) []tetris.Action {
	out := make([]tetris.Action, 0, 7)

	if a, ok := g.steer(input); ok {
		out = append(out, a)
	}
	if input.Has(core.ActionLeft) {
		out = append(out, tetris.ActionMoveLeft)
	}
	if input.Has(core.ActionRight) {
		out = append(out, tetris.ActionMoveRight)
	}
	if input.Has(core.ActionRotateCW) {
		out = append(out, tetris.ActionRotateCW)
	}
	if input.Has(core.ActionRotateCCW) {
		out = append(out, tetris.ActionRotateCCW)
	}
	if input.Has(core.ActionDown) && g.softDropReady() {
		out = append(out, tetris.ActionSoftDrop)
		g.lastSoftDrop = g.tick
		g.softDropped = true
	}
	if input.Has(core.ActionDrop) {
		out = append(out, tetris.ActionHardDrop)
	}
	return out
}

// softDropReady paces soft drops to one per soft_drop_frames ticks, however
// fast the terminal repeats the key.
func (g *Game) softDropReady() bool {
	if !g.softDropped {
		return true
	}
	return g.tick-g.lastSoftDrop >= uint64(g.cfg.Timing.SoftDropFrames)
}

// steer maps the pointer onto a target column and returns the single move
// toward it, if any.
func (g *Game) steer(input core.InputFrame) (tetris.Action, bool) {
	if !g.cfg.Steering.Enabled {
		return tetris.ActionTick, false
	}
	x, _, ok := input.Pointer()
	if !ok {
		return tetris.ActionTick, false
	}
	p, ok := g.engine.Active()
	if !ok {
		return tetris.ActionTick, false
	}

	slot, slots, ok := g.layout.pointerSlot(x, g.cfg.Steering.Slots)
	if !ok {
		return tetris.ActionTick, false
	}
	target := tetris.TargetColumn(p, slot, slots, g.cfg.Board.Cols)
	return tetris.SteerAction(p, target)
}

// applyGravity pushes the difficulty-derived gravity period into the engine.
// Line progression advances in whole levels.
func (g *Game) applyGravity() {
	lines := (g.engine.Lines() / LinesPerLevel) * LinesPerLevel
	frames := g.difficulty.GravityFrames(g.cfg.Timing.GravityFrames, lines, g.engine.Frame())
	if frames == g.engine.Config().GravityFrames {
		return
	}
	//nolint:errcheck // GravityFrames never returns less than 1
	g.engine.SetGravityFrames(frames)
}

// Level returns the displayed level: 1 + lines/10 in marathon, 0 in classic.
func (g *Game) Level() int {
	if g.mode != ModeMarathon || g.engine == nil {
		return 0
	}
	return g.engine.Lines()/LinesPerLevel + 1
}

// Err returns the configuration error that prevented the game from starting.
func (g *Game) Err() error {
	return g.err
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.engine.Score(),
		Lines:    g.engine.Lines(),
		Level:    g.Level(),
		GameOver: g.engine.State() == tetris.StateGameOver,
		Paused:   g.paused,
	}
}
