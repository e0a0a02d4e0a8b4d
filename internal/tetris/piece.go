package tetris

// Cell is an absolute board position tagged with the kind occupying it.
type Cell struct {
	Row  int
	Col  int
	Kind Kind
}

// Piece is the falling piece: a kind, a board-relative anchor and a rotation.
// The anchor is the top-left corner of the 4x4 shape grid and may lie off the
// board while a candidate is being validated.
//
// Piece is a value. Moves and rotations produce a new Piece that is validated
// and then either committed or discarded; nothing is changed in place.
type Piece struct {
	Kind Kind
	Row  int
	Col  int
	Rot  int
}

// Shape returns the piece's current rotation state.
func (p Piece) Shape() Shape {
	return ShapeOf(p.Kind, p.Rot)
}

// Cells returns the absolute cells covered by the piece, in row-major order.
func (p Piece) Cells() []Cell {
	shape := p.Shape()
	cells := make([]Cell, 0, 4)
	for r := range ShapeSize {
		for c := range ShapeSize {
			if shape[r][c] {
				cells = append(cells, Cell{Row: p.Row + r, Col: p.Col + c, Kind: p.Kind})
			}
		}
	}
	return cells
}

// Moved returns a copy of p shifted by (dRow, dCol).
func (p Piece) Moved(dRow, dCol int) Piece {
	p.Row += dRow
	p.Col += dCol
	return p
}

// Rotated returns a copy of p rotated by delta quarter turns (+1 clockwise,
// -1 counter-clockwise) and shifted by (dRow, dCol).
func (p Piece) Rotated(delta, dRow, dCol int) Piece {
	p.Rot = normRot(p.Rot + delta)
	p.Row += dRow
	p.Col += dCol
	return p
}
