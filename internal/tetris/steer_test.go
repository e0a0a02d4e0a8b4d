package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetColumn(t *testing.T) {
	tests := []struct {
		name  string
		p     Piece
		slot  int
		slots int
		want  int
	}{
		{"O left wall", Piece{Kind: KindO}, 0, 10, -1},
		{"O right wall clamps", Piece{Kind: KindO}, 9, 10, 7},
		{"O middle", Piece{Kind: KindO}, 5, 10, 4},
		{"half rounds to even", Piece{Kind: KindT}, 1, 3, 4},
		{"I vertical left", Piece{Kind: KindI}, 0, 10, -1},
		{"I vertical right", Piece{Kind: KindI}, 9, 10, 8},
		{"I horizontal right", Piece{Kind: KindI, Rot: 1}, 9, 10, 6},
		{"slot past the end", Piece{Kind: KindT}, 40, 10, 7},
		{"negative slot", Piece{Kind: KindT}, -3, 10, 0},
		{"single slot", Piece{Kind: KindT, Col: 5}, 3, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TargetColumn(tt.p, tt.slot, tt.slots, 10)
			assert.Equal(t, tt.want, got)

			p := tt.p
			p.Col = got
			assert.True(t, NewBoard(20, 10).Fits(p.Moved(5, 0)), "target must keep the piece on the board")
		})
	}
}

func TestTargetColumnEmptyShape(t *testing.T) {
	p := Piece{Kind: KindNone, Col: 6}
	assert.Equal(t, 6, TargetColumn(p, 0, 10, 10))
}

func TestSteerAction(t *testing.T) {
	p := Piece{Kind: KindT, Col: 3}

	a, ok := SteerAction(p, 5)
	assert.True(t, ok)
	assert.Equal(t, ActionMoveRight, a)

	a, ok = SteerAction(p, 0)
	assert.True(t, ok)
	assert.Equal(t, ActionMoveLeft, a)

	_, ok = SteerAction(p, 3)
	assert.False(t, ok)
}
