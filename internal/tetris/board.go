package tetris

import "strings"

// Board is a fixed rows x cols grid. Each cell is KindNone or one of the seven
// piece kinds. Dimensions never change after creation.
type Board struct {
	rows  int
	cols  int
	cells []Kind // row-major
}

// NewBoard creates an empty board.
func NewBoard(rows, cols int) *Board {
	return &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Kind, rows*cols),
	}
}

// Rows returns the board height.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the board width.
func (b *Board) Cols() int {
	return b.cols
}

// InBounds reports whether (row, col) lies on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// Get returns the kind at (row, col). Out-of-range positions read as KindNone.
func (b *Board) Get(row, col int) Kind {
	if !b.InBounds(row, col) {
		return KindNone
	}
	return b.cells[row*b.cols+col]
}

// Set writes a kind at (row, col). Out-of-range writes and invalid kinds
// other than KindNone are ignored.
func (b *Board) Set(row, col int, k Kind) {
	if !b.InBounds(row, col) || (k != KindNone && !k.Valid()) {
		return
	}
	b.cells[row*b.cols+col] = k
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{
		rows:  b.rows,
		cols:  b.cols,
		cells: make([]Kind, len(b.cells)),
	}
	copy(c.cells, b.cells)
	return c
}

// Fits reports whether p can occupy the board: every covered cell must be in
// range (rows above the top count as out of range) and empty.
func (b *Board) Fits(p Piece) bool {
	for _, cell := range p.Cells() {
		if !b.InBounds(cell.Row, cell.Col) {
			return false
		}
		if b.cells[cell.Row*b.cols+cell.Col] != KindNone {
			return false
		}
	}
	return true
}

// IsFull reports whether the given row contains no empty cell.
func (b *Board) IsFull(row int) bool {
	if row < 0 || row >= b.rows {
		return false
	}
	for _, k := range b.cells[row*b.cols : (row+1)*b.cols] {
		if k == KindNone {
			return false
		}
	}
	return true
}

// withPiece returns a copy of the board with p written into it.
// Cells of p that fall outside the board are dropped.
func (b *Board) withPiece(p Piece) *Board {
	next := b.Clone()
	for _, cell := range p.Cells() {
		next.Set(cell.Row, cell.Col, p.Kind)
	}
	return next
}

// ClearLines removes every full row, shifts the remaining rows down keeping
// their order, and inserts the same number of empty rows at the top.
// Returns the number of rows removed.
func (b *Board) ClearLines() int {
	write := b.rows - 1
	for read := b.rows - 1; read >= 0; read-- {
		if b.IsFull(read) {
			continue
		}
		if write != read {
			copy(b.cells[write*b.cols:(write+1)*b.cols], b.cells[read*b.cols:(read+1)*b.cols])
		}
		write--
	}
	cleared := write + 1
	for i := range b.cells[:cleared*b.cols] {
		b.cells[i] = KindNone
	}
	return cleared
}

// Settled returns every non-empty cell in row-major order.
func (b *Board) Settled() []Cell {
	var out []Cell
	for row := range b.rows {
		for col := range b.cols {
			if k := b.cells[row*b.cols+col]; k != KindNone {
				out = append(out, Cell{Row: row, Col: col, Kind: k})
			}
		}
	}
	return out
}

// String renders the board one row per line, '.' for empty cells.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(b.rows * (b.cols + 1))
	for row := range b.rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range b.cols {
			sb.WriteString(b.cells[row*b.cols+col].String())
		}
	}
	return sb.String()
}
