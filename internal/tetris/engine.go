package tetris

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidConfig is returned for construction parameters that would leave
// the engine's behavior undefined.
var ErrInvalidConfig = errors.New("tetris: invalid config")

// PreviewLength is the minimum number of upcoming kinds kept in the next-queue.
const PreviewLength = 4

// Action is the closed set of commands accepted by Engine.Step.
type Action int

const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionSoftDrop
	ActionHardDrop
	ActionRotateCW
	ActionRotateCCW
	ActionTick
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionHardDrop:
		return "HardDrop"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionTick:
		return "Tick"
	default:
		return "Unknown"
	}
}

// RunState is the engine's run/game-over state. It only moves forward.
type RunState int

const (
	StateRunning RunState = iota
	StateGameOver
)

// String returns a human-readable name for the state.
func (s RunState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Config holds the construction parameters of an Engine.
type Config struct {
	Rows int // Board height in cells
	Cols int // Board width in cells

	// GravityFrames is the number of ticks per automatic one-row fall.
	GravityFrames int

	// SoftDropFrames is the soft-drop cadence the driver should use when a
	// drop key is held. The engine stores it but never reads it: faster descent
	// comes from the driver issuing repeated ActionSoftDrop.
	SoftDropFrames int

	// LockDelayFrames is how many failed gravity falls a resting piece survives
	// before it is locked.
	LockDelayFrames int

	// Seed feeds the randomizer, making piece sequences reproducible.
	Seed int64
}

// DefaultConfig returns the standard 20x10 board with 60 fps timings.
func DefaultConfig() Config {
	return Config{
		Rows:            20,
		Cols:            10,
		GravityFrames:   48,
		SoftDropFrames:  2,
		LockDelayFrames: 30,
	}
}

// Validate checks every field and reports the first problem found.
func (c Config) Validate() error {
	switch {
	case c.Rows < ShapeSize:
		return fmt.Errorf("%w: rows must be at least %d, got %d", ErrInvalidConfig, ShapeSize, c.Rows)
	case c.Cols < ShapeSize:
		return fmt.Errorf("%w: cols must be at least %d, got %d", ErrInvalidConfig, ShapeSize, c.Cols)
	case c.GravityFrames <= 0:
		return fmt.Errorf("%w: gravity frames must be positive, got %d", ErrInvalidConfig, c.GravityFrames)
	case c.SoftDropFrames <= 0:
		return fmt.Errorf("%w: soft drop frames must be positive, got %d", ErrInvalidConfig, c.SoftDropFrames)
	case c.LockDelayFrames <= 0:
		return fmt.Errorf("%w: lock delay frames must be positive, got %d", ErrInvalidConfig, c.LockDelayFrames)
	}
	return nil
}

// kicks are the (row, col) offsets tried in order when rotating: none, one
// right, one left, one down, one up. The list is the same for every kind and
// every pair of rotation states.
var kicks = [...][2]int{{0, 0}, {0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// scoreTable maps lines cleared by a single lock to points awarded.
var scoreTable = [...]int{0, 100, 300, 500, 800}

// ScoreForLines returns the points awarded for clearing n lines at once.
func ScoreForLines(n int) int {
	if n < 0 || n >= len(scoreTable) {
		return 0
	}
	return scoreTable[n]
}

// StepEvent summarizes what a single Step did.
type StepEvent struct {
	Action   Action
	Moved    bool // A move, drop or rotation was committed
	Locked   bool // The active piece was merged into the board
	Cleared  int  // Lines removed by the lock
	Points   int  // Score gained by the lock
	Spawned  Kind // Kind spawned after a lock, KindNone otherwise
	GameOver bool // This step ended the game
}

// Engine owns the complete game state. It is not safe for concurrent use;
// callers serialize every Step onto one goroutine.
type Engine struct {
	cfg Config

	board     *Board
	active    Piece
	hasActive bool
	queue     []Kind
	bag       *Bag

	score       int
	lines       int
	frame       uint64
	lockCounter int
	state       RunState
}

// New validates cfg and returns an engine with an empty board, a full
// next-queue and the first piece already spawned.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:   cfg,
		board: NewBoard(cfg.Rows, cfg.Cols),
		bag:   NewBag(rand.New(rand.NewSource(cfg.Seed))),
		queue: make([]Kind, 0, PreviewLength+1),
	}
	e.fillQueue()
	e.spawnNext()
	return e, nil
}

// Step applies one action. Once the game is over every action is a no-op.
// A rejected move or rotation leaves the engine unchanged.
func (e *Engine) Step(a Action) StepEvent {
	ev := StepEvent{Action: a}
	if e.state != StateRunning {
		return ev
	}

	if a == ActionTick {
		e.tick(&ev)
		return ev
	}
	if !e.hasActive {
		return ev
	}

	switch a {
	case ActionMoveLeft:
		ev.Moved = e.tryMove(0, -1)
	case ActionMoveRight:
		ev.Moved = e.tryMove(0, 1)
	case ActionSoftDrop:
		ev.Moved = e.tryMove(1, 0)
	case ActionHardDrop:
		for e.tryMove(1, 0) {
			ev.Moved = true
		}
		e.lock(&ev)
	case ActionRotateCW:
		ev.Moved = e.tryRotate(1)
	case ActionRotateCCW:
		ev.Moved = e.tryRotate(-1)
	}
	return ev
}

// tick advances the frame counter and applies gravity on gravity frames.
func (e *Engine) tick(ev *StepEvent) {
	e.frame++
	if !e.hasActive {
		return
	}
	if e.frame%uint64(e.cfg.GravityFrames) != 0 {
		return
	}

	if e.tryMove(1, 0) {
		ev.Moved = true
		return
	}

	e.lockCounter++
	if e.lockCounter >= e.cfg.LockDelayFrames {
		e.lock(ev)
	}
}

// tryMove commits a shifted copy of the active piece if it fits.
// Any successful downward move resets the lock-delay counter.
func (e *Engine) tryMove(dRow, dCol int) bool {
	candidate := e.active.Moved(dRow, dCol)
	if !e.board.Fits(candidate) {
		return false
	}
	e.active = candidate
	if dRow > 0 {
		e.lockCounter = 0
	}
	return true
}

// tryRotate tries each kick offset in order with the new rotation and commits
// the first candidate that fits.
func (e *Engine) tryRotate(delta int) bool {
	for _, k := range kicks {
		candidate := e.active.Rotated(delta, k[0], k[1])
		if e.board.Fits(candidate) {
			e.active = candidate
			return true
		}
	}
	return false
}

// lock merges the active piece into the board, clears full lines, scores and
// spawns the next piece.
func (e *Engine) lock(ev *StepEvent) {
	next := e.board.withPiece(e.active)
	cleared := next.ClearLines()

	e.board = next
	e.lines += cleared
	points := ScoreForLines(cleared)
	e.score += points

	ev.Locked = true
	ev.Cleared = cleared
	ev.Points = points

	e.spawnNext()
	e.lockCounter = 0

	ev.Spawned = e.active.Kind
	ev.GameOver = e.state == StateGameOver
}

// fillQueue tops the next-queue up to PreviewLength entries.
func (e *Engine) fillQueue() {
	for len(e.queue) < PreviewLength {
		e.queue = append(e.queue, e.bag.Next())
	}
}

// spawnNext pops the next kind and places it at the spawn anchor. A spawn
// that already collides ends the game; the colliding piece stays in place so
// the final frame can still be drawn.
func (e *Engine) spawnNext() {
	e.fillQueue()
	kind := e.queue[0]
	e.queue = append(e.queue[:0], e.queue[1:]...)
	e.fillQueue()

	e.active = Piece{Kind: kind, Row: 0, Col: SpawnColumn(e.cfg.Cols), Rot: 0}
	e.hasActive = true
	if !e.board.Fits(e.active) {
		e.state = StateGameOver
	}
}

// SpawnColumn returns the anchor column that centers a 4-wide shape grid.
func SpawnColumn(cols int) int {
	return (cols - ShapeSize) / 2
}

// SetGravityFrames changes the gravity period between steps, for example on a
// level change. Non-positive values are rejected and leave the engine as is.
func (e *Engine) SetGravityFrames(frames int) error {
	if frames <= 0 {
		return fmt.Errorf("%w: gravity frames must be positive, got %d", ErrInvalidConfig, frames)
	}
	e.cfg.GravityFrames = frames
	return nil
}
