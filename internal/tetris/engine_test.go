package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg)
	require.NoError(t, err)
	return e
}

// fillRow occupies every column of row except the listed ones.
func fillRow(b *Board, row int, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, c := range except {
		skip[c] = true
	}
	for col := range b.Cols() {
		if !skip[col] {
			b.Set(row, col, KindZ)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rows", func(c *Config) { c.Rows = 0 }},
		{"negative cols", func(c *Config) { c.Cols = -10 }},
		{"too narrow for a piece", func(c *Config) { c.Cols = 3 }},
		{"zero gravity", func(c *Config) { c.GravityFrames = 0 }},
		{"negative soft drop", func(c *Config) { c.SoftDropFrames = -1 }},
		{"zero lock delay", func(c *Config) { c.LockDelayFrames = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			e, err := New(cfg)
			assert.Nil(t, e)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNewSpawnsFirstPiece(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	p, ok := e.Active()
	require.True(t, ok)
	assert.True(t, p.Kind.Valid())
	assert.Equal(t, 0, p.Row)
	assert.Equal(t, 3, p.Col)
	assert.Equal(t, 0, p.Rot)

	assert.Len(t, e.NextQueue(0), PreviewLength)
	assert.Equal(t, StateRunning, e.State())
	assert.Zero(t, e.Score())
	assert.Zero(t, e.Lines())
	assert.Empty(t, e.Board().Settled())
}

func TestOPieceHardDropScenario(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	e.active = Piece{Kind: KindO, Row: 0, Col: SpawnColumn(10)}
	upcoming := e.NextQueue(1)[0]

	ev := e.Step(ActionHardDrop)
	require.True(t, ev.Locked)
	assert.Zero(t, ev.Cleared)

	b := e.Board()
	for _, rc := range [][2]int{{18, 4}, {18, 5}, {19, 4}, {19, 5}} {
		assert.Equal(t, KindO, b.Get(rc[0], rc[1]), "cell %v", rc)
	}
	assert.Len(t, b.Settled(), 4)

	p, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, upcoming, p.Kind)
	assert.Equal(t, 0, p.Row)
	assert.Equal(t, SpawnColumn(10), p.Col)
	assert.Equal(t, StateRunning, e.State())
	assert.Equal(t, upcoming, ev.Spawned)
}

func TestHardDropLandsOnFloorForEveryKind(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			t.Parallel()
			e := newTestEngine(t, DefaultConfig())
			e.active = Piece{Kind: k, Row: 0, Col: SpawnColumn(10)}
			ghost := e.GhostCells()

			ev := e.Step(ActionHardDrop)
			require.True(t, ev.Locked)

			settled := e.Board().Settled()
			assert.ElementsMatch(t, ghost, settled)

			lowest := 0
			for _, c := range settled {
				assert.Equal(t, k, c.Kind)
				lowest = max(lowest, c.Row)
			}
			assert.Equal(t, 19, lowest, "piece must rest on the floor")
			assert.Zero(t, e.LockCounter())
		})
	}
}

func TestHardDropLocksExactlyOnce(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	e.active = Piece{Kind: KindT, Row: 0, Col: SpawnColumn(10)}

	e.Step(ActionHardDrop)
	assert.Len(t, e.Board().Settled(), 4)

	// The freshly spawned piece is untouched by the previous drop.
	p, _ := e.Active()
	assert.Equal(t, 0, p.Row)
}

func TestSingleLineClear(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	fillRow(e.board, 19, 9)
	e.board.Set(10, 0, KindT)

	// A vertical I anchored at column 8 occupies column 9.
	e.active = Piece{Kind: KindI, Row: 0, Col: 8}

	ev := e.Step(ActionHardDrop)
	assert.Equal(t, 1, ev.Cleared)
	assert.Equal(t, 100, ev.Points)
	assert.Equal(t, 100, e.Score())
	assert.Equal(t, 1, e.Lines())

	b := e.Board()
	// The three surviving I cells moved down one row.
	for row := 17; row <= 19; row++ {
		assert.Equal(t, KindI, b.Get(row, 9), "row %d", row)
	}
	assert.Equal(t, KindNone, b.Get(16, 9))
	// Rows above the cleared one shift down by one.
	assert.Equal(t, KindT, b.Get(11, 0))
	assert.Equal(t, KindNone, b.Get(10, 0))
	// A fresh empty row sits on top.
	for col := range 10 {
		assert.Equal(t, KindNone, b.Get(0, col))
	}
	assert.Len(t, b.Settled(), 4)
}

func TestFourLineClear(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	for row := 16; row <= 19; row++ {
		fillRow(e.board, row, 9)
	}
	e.active = Piece{Kind: KindI, Row: 0, Col: 8}

	ev := e.Step(ActionHardDrop)
	assert.Equal(t, 4, ev.Cleared)
	assert.Equal(t, 800, e.Score())
	assert.Equal(t, 4, e.Lines())
	assert.Empty(t, e.Board().Settled())
}

func TestScoreForLines(t *testing.T) {
	tests := []struct {
		lines, points int
	}{
		{0, 0},
		{1, 100},
		{2, 300},
		{3, 500},
		{4, 800},
		{5, 0},
		{-1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.points, ScoreForLines(tt.lines), "lines=%d", tt.lines)
	}
}

func TestGravityPeriod(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	start, _ := e.Active()

	for range 47 {
		e.Step(ActionTick)
	}
	p, _ := e.Active()
	assert.Equal(t, start.Row, p.Row, "47 ticks must not move the piece")

	ev := e.Step(ActionTick)
	assert.True(t, ev.Moved)
	p, _ = e.Active()
	assert.Equal(t, start.Row+1, p.Row)
	assert.Equal(t, uint64(48), e.Frame())
}

func TestLockDelay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GravityFrames = 1
	cfg.LockDelayFrames = 3
	e := newTestEngine(t, cfg)

	// O cells sit at offset rows 1-2, so anchor row 17 rests on the floor.
	e.active = Piece{Kind: KindO, Row: 17, Col: 3}

	ev := e.Step(ActionTick)
	assert.False(t, ev.Locked)
	assert.Equal(t, 1, e.LockCounter())

	ev = e.Step(ActionTick)
	assert.False(t, ev.Locked)
	assert.Equal(t, 2, e.LockCounter())

	ev = e.Step(ActionTick)
	assert.True(t, ev.Locked)
	assert.Zero(t, e.LockCounter())
	assert.Equal(t, KindO, e.Board().Get(19, 4))
}

func TestDownwardMoveResetsLockCounter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GravityFrames = 1
	cfg.LockDelayFrames = 10
	e := newTestEngine(t, cfg)
	e.board.Set(19, 4, KindJ)
	e.active = Piece{Kind: KindO, Row: 16, Col: 3}

	e.Step(ActionTick) // rests on the J
	assert.Equal(t, 1, e.LockCounter())

	// Slide off the obstacle; the next downward move resets the counter.
	require.True(t, e.Step(ActionMoveRight).Moved)
	require.True(t, e.Step(ActionMoveRight).Moved)
	require.True(t, e.Step(ActionSoftDrop).Moved)
	assert.Zero(t, e.LockCounter())
}

func TestSoftDrop(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	e.active = Piece{Kind: KindO, Row: 0, Col: 3}

	ev := e.Step(ActionSoftDrop)
	assert.True(t, ev.Moved)
	p, _ := e.Active()
	assert.Equal(t, 1, p.Row)

	e.active = Piece{Kind: KindO, Row: 17, Col: 3}
	ev = e.Step(ActionSoftDrop)
	assert.False(t, ev.Moved)
	assert.False(t, ev.Locked, "soft drop never locks")
	p, _ = e.Active()
	assert.Equal(t, 17, p.Row)
}

func TestHorizontalMovesStopAtWalls(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	e.active = Piece{Kind: KindO, Row: 5, Col: 3}

	for range 20 {
		e.Step(ActionMoveLeft)
	}
	p, _ := e.Active()
	assert.Equal(t, -1, p.Col, "O has an empty first column")

	for range 20 {
		e.Step(ActionMoveRight)
	}
	p, _ = e.Active()
	assert.Equal(t, 7, p.Col)
	assert.Equal(t, 5, p.Row)
}

func TestRotateWallKick(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	// Vertical I hugging the left wall: anchor -1, cells in column 0.
	e.active = Piece{Kind: KindI, Row: 5, Col: -1, Rot: 0}

	ev := e.Step(ActionRotateCW)
	require.True(t, ev.Moved)

	p, _ := e.Active()
	assert.Equal(t, Piece{Kind: KindI, Row: 5, Col: 0, Rot: 1}, p, "kick one column right")
}

func TestRotatePrefersNoOffset(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	e.active = Piece{Kind: KindT, Row: 5, Col: 3, Rot: 0}

	e.Step(ActionRotateCCW)
	p, _ := e.Active()
	assert.Equal(t, Piece{Kind: KindT, Row: 5, Col: 3, Rot: 3}, p)

	e.Step(ActionRotateCW)
	e.Step(ActionRotateCW)
	p, _ = e.Active()
	assert.Equal(t, 1, p.Rot)
}

func TestRotateKickOrder(t *testing.T) {
	// A horizontal I at (8, 3) turning clockwise. Blockers rule out the earlier
	// offsets so each case commits a different one.
	tests := []struct {
		name     string
		blockers [][2]int
		expected Piece
	}{
		{"in place", nil, Piece{Kind: KindI, Row: 8, Col: 3, Rot: 1}},
		{"right", [][2]int{{9, 3}}, Piece{Kind: KindI, Row: 8, Col: 4, Rot: 1}},
		{"left", [][2]int{{9, 6}}, Piece{Kind: KindI, Row: 8, Col: 2, Rot: 1}},
		{"down before up", [][2]int{{9, 5}}, Piece{Kind: KindI, Row: 9, Col: 3, Rot: 1}},
		{"up", [][2]int{{9, 5}, {10, 3}}, Piece{Kind: KindI, Row: 7, Col: 3, Rot: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, DefaultConfig())
			e.active = Piece{Kind: KindI, Row: 8, Col: 3, Rot: 0}
			for _, b := range tt.blockers {
				e.board.Set(b[0], b[1], KindZ)
			}
			require.True(t, e.Fits(e.active))

			ev := e.Step(ActionRotateCW)
			require.True(t, ev.Moved)
			p, _ := e.Active()
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestRotateKickDownNearTop(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	// A vertical I poking above the board: turning in place would leave row -1
	// occupied, so the first offset that fits is one row down.
	e.active = Piece{Kind: KindI, Row: -1, Col: 3, Rot: 1}

	e.Step(ActionRotateCW)
	p, _ := e.Active()
	assert.Equal(t, Piece{Kind: KindI, Row: 0, Col: 3, Rot: 2}, p)
}

func TestRotateFailsSilentlyInWell(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	for row := range 20 {
		fillRow(e.board, row, 4)
	}
	e.active = Piece{Kind: KindI, Row: 10, Col: 3, Rot: 0}
	before := e.Snapshot()

	assert.False(t, e.Step(ActionRotateCW).Moved)
	assert.False(t, e.Step(ActionRotateCCW).Moved)
	assert.Equal(t, before, e.Snapshot())
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	for row := 2; row < 20; row++ {
		fillRow(e.board, row, 0)
	}
	e.spawnNext()
	require.Equal(t, StateGameOver, e.State())

	// The colliding piece remains visible.
	p, ok := e.Active()
	require.True(t, ok)
	assert.False(t, e.Fits(p))
	assert.NotEmpty(t, e.GhostCells())
}

func TestGameOverFreezesState(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	for row := 2; row < 20; row++ {
		fillRow(e.board, row, 0)
	}
	e.spawnNext()
	require.Equal(t, StateGameOver, e.State())
	before := e.Snapshot()

	actions := []Action{
		ActionMoveLeft, ActionMoveRight, ActionSoftDrop, ActionHardDrop,
		ActionRotateCW, ActionRotateCCW, ActionTick,
	}
	for _, a := range actions {
		ev := e.Step(a)
		assert.Equal(t, StepEvent{Action: a}, ev)
	}
	assert.Equal(t, before, e.Snapshot())
}

func TestLockThatToppedOutReportsGameOver(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	for row := 3; row < 20; row++ {
		fillRow(e.board, row, 0)
	}
	// An O dropped in the middle lands on row 2 and blocks every spawn.
	e.active = Piece{Kind: KindO, Row: 0, Col: 3}

	ev := e.Step(ActionHardDrop)
	assert.True(t, ev.Locked)
	assert.True(t, ev.GameOver)
	assert.Equal(t, StateGameOver, e.State())
}

func TestGhostCellsDoNotMutate(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	e.active = Piece{Kind: KindO, Row: 0, Col: 3}
	before := e.Snapshot()

	ghost := e.GhostCells()
	assert.ElementsMatch(t, []Cell{
		{Row: 18, Col: 4, Kind: KindO},
		{Row: 18, Col: 5, Kind: KindO},
		{Row: 19, Col: 4, Kind: KindO},
		{Row: 19, Col: 5, Kind: KindO},
	}, ghost)
	assert.Equal(t, before, e.Snapshot())
}

func TestGhostStopsOnStack(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	fillRow(e.board, 19)
	fillRow(e.board, 18, 0)
	e.active = Piece{Kind: KindO, Row: 0, Col: 3}

	for _, c := range e.GhostCells() {
		assert.LessOrEqual(t, c.Row, 17)
	}
}

func TestCellsIncludeActivePiece(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	e.board.Set(19, 0, KindL)
	e.active = Piece{Kind: KindO, Row: 0, Col: 3}

	cells := e.Cells()
	require.Len(t, cells, 5)
	assert.Equal(t, Cell{Row: 19, Col: 0, Kind: KindL}, cells[0])
	assert.ElementsMatch(t, e.active.Cells(), cells[1:])
}

func TestNextQueuePreview(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	assert.Len(t, e.NextQueue(2), 2)
	assert.Len(t, e.NextQueue(10), PreviewLength)
	assert.Len(t, e.NextQueue(0), PreviewLength)

	q := e.NextQueue(1)
	want := q[0]
	q[0] = KindNone
	assert.Equal(t, want, e.NextQueue(1)[0], "returned queue must be a copy")

	// The head of the queue is what spawns next.
	e.Step(ActionHardDrop)
	p, _ := e.Active()
	assert.Equal(t, want, p.Kind)
	assert.Len(t, e.NextQueue(0), PreviewLength)
}

func TestDeterministicReplay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 12345
	script := []Action{
		ActionMoveLeft, ActionRotateCW, ActionHardDrop,
		ActionMoveRight, ActionMoveRight, ActionHardDrop,
		ActionRotateCCW, ActionSoftDrop, ActionSoftDrop, ActionHardDrop,
	}

	run := func() Snapshot {
		e := newTestEngine(t, cfg)
		for _, a := range script {
			e.Step(a)
			for range 10 {
				e.Step(ActionTick)
			}
		}
		return e.Snapshot()
	}

	assert.Equal(t, run(), run())
}

func TestSetGravityFrames(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	require.NoError(t, e.SetGravityFrames(2))
	assert.Equal(t, 2, e.Config().GravityFrames)

	start, _ := e.Active()
	e.Step(ActionTick)
	e.Step(ActionTick)
	p, _ := e.Active()
	assert.Equal(t, start.Row+1, p.Row)

	assert.ErrorIs(t, e.SetGravityFrames(0), ErrInvalidConfig)
	assert.Equal(t, 2, e.Config().GravityFrames)
}

func TestIndependentEngines(t *testing.T) {
	cfg := DefaultConfig()
	a := newTestEngine(t, cfg)
	b := newTestEngine(t, cfg)

	a.Step(ActionHardDrop)
	assert.Empty(t, b.Board().Settled())
	assert.NotEmpty(t, a.Board().Settled())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "HardDrop", ActionHardDrop.String())
	assert.Equal(t, "Tick", ActionTick.String())
	assert.Equal(t, "Unknown", Action(99).String())
	assert.Equal(t, "game_over", StateGameOver.String())
}
