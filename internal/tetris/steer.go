package tetris

import "math"

// TargetColumn maps an absolute target slot onto an anchor column for p.
//
// The board width is divided into slots evenly spaced slots (slot 0 at the left
// wall, slot slots-1 at the right wall). The returned anchor puts the piece's
// leftmost occupied column on the slot's board column, clamped so every
// occupied column stays on the board.
func TargetColumn(p Piece, slot, slots, cols int) int {
	_, _, minCol, maxCol := p.Shape().Bounds()
	if maxCol < 0 {
		return p.Col
	}

	boardCol := 0
	if slots > 1 {
		frac := float64(slot) / float64(slots-1)
		// Halves go to the even column: slot 1 of 3 on a 10-wide board is column 4
		boardCol = int(math.RoundToEven(frac * float64(cols-1)))
	}

	target := boardCol - minCol
	lo := -minCol
	hi := cols - 1 - maxCol
	return max(lo, min(hi, target))
}

// SteerAction returns the single horizontal move that brings p one column
// closer to anchor column target. ok is false when p is already there.
func SteerAction(p Piece, target int) (a Action, ok bool) {
	switch {
	case p.Col < target:
		return ActionMoveRight, true
	case p.Col > target:
		return ActionMoveLeft, true
	default:
		return ActionTick, false
	}
}
