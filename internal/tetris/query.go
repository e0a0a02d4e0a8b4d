package tetris

// Cells returns every settled cell followed by the active piece's cells.
// After game over the colliding spawn is still included for the final frame.
func (e *Engine) Cells() []Cell {
	out := e.board.Settled()
	if e.hasActive {
		out = append(out, e.active.Cells()...)
	}
	return out
}

// GhostCells returns where the active piece would come to rest if dropped
// straight down from its current position. The engine is not modified.
func (e *Engine) GhostCells() []Cell {
	if !e.hasActive {
		return nil
	}
	return e.ghost().Cells()
}

// ghost probes downward from the active piece until the next row collides.
func (e *Engine) ghost() Piece {
	g := e.active
	for e.board.Fits(g.Moved(1, 0)) {
		g = g.Moved(1, 0)
	}
	return g
}

// NextQueue returns a copy of the upcoming kinds, truncated to n entries.
// n <= 0 returns the whole queue.
func (e *Engine) NextQueue(n int) []Kind {
	if n <= 0 || n > len(e.queue) {
		n = len(e.queue)
	}
	out := make([]Kind, n)
	copy(out, e.queue[:n])
	return out
}

// Fits reports whether p would be accepted on the current board.
func (e *Engine) Fits(p Piece) bool {
	return e.board.Fits(p)
}

// Active returns the falling piece and whether there is one.
func (e *Engine) Active() (Piece, bool) {
	return e.active, e.hasActive
}

// Board returns a copy of the settled board.
func (e *Engine) Board() *Board {
	return e.board.Clone()
}

// Score returns the accumulated score.
func (e *Engine) Score() int {
	return e.score
}

// Lines returns the cumulative number of cleared lines.
func (e *Engine) Lines() int {
	return e.lines
}

// State returns the run state.
func (e *Engine) State() RunState {
	return e.state
}

// Frame returns the number of ticks processed.
func (e *Engine) Frame() uint64 {
	return e.frame
}

// LockCounter returns the current lock-delay count.
func (e *Engine) LockCounter() int {
	return e.lockCounter
}

// Config returns the engine's parameters, including any gravity change.
func (e *Engine) Config() Config {
	return e.cfg
}

// Snapshot captures the observable engine state for determinism testing and replay.
type Snapshot struct {
	Frame       uint64
	Score       int
	Lines       int
	State       RunState
	Active      Piece
	HasActive   bool
	Queue       []Kind
	LockCounter int
	Board       string
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Frame:       e.frame,
		Score:       e.score,
		Lines:       e.lines,
		State:       e.state,
		Active:      e.active,
		HasActive:   e.hasActive,
		Queue:       e.NextQueue(0),
		LockCounter: e.lockCounter,
		Board:       e.board.String(),
	}
}
