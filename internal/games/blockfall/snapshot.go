package blockfall

import "github.com/vovakirdan/blockfall/internal/tetris"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StateTooSmall    GameStateType = "paused_small_window"
	StateConfigError GameStateType = "config_error"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick          uint64
	Mode          Mode
	Level         int
	GravityFrames int
	State         GameStateType
	Engine        tetris.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.engine == nil {
		return Snapshot{Tick: g.tick, Mode: g.mode, State: StateConfigError}
	}

	state := StatePlaying
	switch {
	case g.layout.tooSmall:
		state = StateTooSmall
	case g.engine.State() == tetris.StateGameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:          g.tick,
		Mode:          g.mode,
		Level:         g.Level(),
		GravityFrames: g.engine.Config().GravityFrames,
		State:         state,
		Engine:        g.engine.Snapshot(),
	}
}
