// Package tetris implements the falling-block simulation engine: piece geometry,
// the seven-bag randomizer, movement and rotation with wall kicks, gravity with
// lock delay, line clearing and scoring.
//
// The engine is pure and synchronous. It performs no I/O and owns no goroutines;
// a driver feeds it discrete actions plus one Tick per simulated frame and reads
// the result back through query methods.
package tetris

import "fmt"

// Kind identifies one of the seven piece kinds. The zero value is KindNone,
// which marks an empty board cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// kindCount is the number of real piece kinds (KindNone excluded).
const kindCount = 7

// Kinds returns the seven piece kinds in canonical order.
func Kinds() []Kind {
	return []Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}
}

// Valid reports whether k is one of the seven piece kinds.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindL
}

// String returns the single-letter name of the kind, or "." for KindNone.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "."
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "?"
	}
}

// ParseKind converts a single-letter name back to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("tetris: unknown piece kind %q", s)
}

// ShapeSize is the edge length of every rotation-state grid.
const ShapeSize = 4

// Shape is one rotation state: a 4x4 occupancy grid indexed [row][col].
type Shape [ShapeSize][ShapeSize]bool

// Bounds returns the smallest and largest occupied row and column offsets.
func (s Shape) Bounds() (minRow, maxRow, minCol, maxCol int) {
	minRow, minCol = ShapeSize, ShapeSize
	maxRow, maxCol = -1, -1
	for r := range ShapeSize {
		for c := range ShapeSize {
			if !s[r][c] {
				continue
			}
			minRow = min(minRow, r)
			maxRow = max(maxRow, r)
			minCol = min(minCol, c)
			maxCol = max(maxCol, c)
		}
	}
	return minRow, maxRow, minCol, maxCol
}

// shapeLayouts holds every rotation state as text, '#' marking an occupied cell.
// Rotation states are listed in clockwise order starting from the spawn state.
var shapeLayouts = [kindCount][4][ShapeSize]string{
	{ // I
		{".#..", ".#..", ".#..", ".#.."},
		{"....", "####", "....", "...."},
		{"..#.", "..#.", "..#.", "..#."},
		{"....", "....", "####", "...."},
	},
	{ // O
		{"....", ".##.", ".##.", "...."},
		{"....", ".##.", ".##.", "...."},
		{"....", ".##.", ".##.", "...."},
		{"....", ".##.", ".##.", "...."},
	},
	{ // T
		{"....", "###.", ".#..", "...."},
		{".#..", "##..", ".#..", "...."},
		{".#..", "###.", "....", "...."},
		{".#..", ".##.", ".#..", "...."},
	},
	{ // S
		{"....", ".##.", "##..", "...."},
		{"#...", "##..", ".#..", "...."},
		{"....", ".##.", "##..", "...."},
		{"#...", "##..", ".#..", "...."},
	},
	{ // Z
		{"....", "##..", ".##.", "...."},
		{".#..", "##..", "#...", "...."},
		{"....", "##..", ".##.", "...."},
		{".#..", "##..", "#...", "...."},
	},
	{ // J
		{"....", "###.", "..#.", "...."},
		{".#..", ".#..", "##..", "...."},
		{"#...", "###.", "....", "...."},
		{".##.", ".#..", ".#..", "...."},
	},
	{ // L
		{"....", "###.", "#...", "...."},
		{"##..", ".#..", ".#..", "...."},
		{"..#.", "###.", "....", "...."},
		{".#..", ".#..", ".##.", "...."},
	},
}

// shapes is the read-only lookup built from shapeLayouts, indexed [kind-1][rotation].
var shapes = buildShapes()

func buildShapes() [kindCount][4]Shape {
	var out [kindCount][4]Shape
	for k, rotations := range shapeLayouts {
		for rot, rows := range rotations {
			for r, row := range rows {
				for c, ch := range row {
					out[k][rot][r][c] = ch == '#'
				}
			}
		}
	}
	return out
}

// ShapeOf returns the rotation state of kind k. The rotation index is taken
// modulo 4, so negative and large values are accepted.
// KindNone yields an empty shape.
func ShapeOf(k Kind, rot int) Shape {
	if !k.Valid() {
		return Shape{}
	}
	return shapes[k-1][normRot(rot)]
}

// normRot maps any integer onto 0..3.
func normRot(rot int) int {
	return ((rot % 4) + 4) % 4
}
