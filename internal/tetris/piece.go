package tetris

import (
	"math/rand"
	"time"
)

// Kind identifies a tetromino. The zero value marks an empty board cell.
type Kind int

const (
	None Kind = iota
	I
	J
	L
	O
	S
	T
	Z
)

// Kinds lists every playable kind in catalog order.
var Kinds = []Kind{I, J, L, O, S, T, Z}

func (k Kind) String() string {
	switch k {
	case I:
		return "I"
	case J:
		return "J"
	case L:
		return "L"
	case O:
		return "O"
	case S:
		return "S"
	case T:
		return "T"
	case Z:
		return "Z"
	default:
		return "."
	}
}

// Valid reports whether k is one of the seven catalog kinds.
func (k Kind) Valid() bool {
	return k >= I && k <= Z
}

type Point struct {
	X int
	Y int
}

// Shape is a row-major occupancy matrix for a piece's bounding box.
type Shape [][]bool

var catalog = map[Kind][][]int{
	I: {{1, 1, 1, 1}},
	J: {{1, 0, 0}, {1, 1, 1}},
	L: {{0, 0, 1}, {1, 1, 1}},
	O: {{1, 1}, {1, 1}},
	S: {{0, 1, 1}, {1, 1, 0}},
	T: {{0, 1, 0}, {1, 1, 1}},
	Z: {{1, 1, 0}, {0, 1, 1}},
}

// ShapeOf returns a fresh copy of the canonical matrix for kind, or nil for
// an unknown kind.
func ShapeOf(kind Kind) Shape {
	rows, ok := catalog[kind]
	if !ok {
		return nil
	}
	shape := make(Shape, len(rows))
	for y, row := range rows {
		shape[y] = make([]bool, len(row))
		for x, v := range row {
			shape[y][x] = v == 1
		}
	}
	return shape
}

func (s Shape) Height() int {
	return len(s)
}

func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Filled counts occupied cells.
func (s Shape) Filled() int {
	n := 0
	for _, row := range s {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// Rotate returns the clockwise rotation of s: transpose, then reverse each
// resulting row. s is left untouched.
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	rotated := make(Shape, w)
	for i := 0; i < w; i++ {
		rotated[i] = make([]bool, h)
		for j := 0; j < h; j++ {
			rotated[i][j] = s[h-1-j][i]
		}
	}
	return rotated
}

func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for y, row := range s {
		out[y] = append([]bool(nil), row...)
	}
	return out
}

func (s Shape) Equal(other Shape) bool {
	if s.Height() != other.Height() || s.Width() != other.Width() {
		return false
	}
	for y := range s {
		for x := range s[y] {
			if s[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// Piece is a falling tetromino. It is a value: every transition produces a
// new Piece rather than editing one in place.
type Piece struct {
	Kind  Kind
	Shape Shape
	X     int
	Y     int
}

// Spawn places kind centered horizontally at the top of a board cols wide.
func Spawn(kind Kind, cols int) Piece {
	return Piece{Kind: kind, Shape: ShapeOf(kind)}.Recenter(cols)
}

// Recenter moves p back to the spawn position for its current shape.
func (p Piece) Recenter(cols int) Piece {
	p.X = cols/2 - p.Shape.Width()/2
	p.Y = 0
	return p
}

func (p Piece) Translate(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

func (p Piece) Rotate() Piece {
	p.Shape = p.Shape.Rotate()
	return p
}

// Cells returns the board coordinates covered by p.
func (p Piece) Cells() []Point {
	cells := make([]Point, 0, 4)
	for y, row := range p.Shape {
		for x, v := range row {
			if v {
				cells = append(cells, Point{X: p.X + x, Y: p.Y + y})
			}
		}
	}
	return cells
}

// KindSource yields the kind of each newly generated piece.
type KindSource func() Kind

// RandomKinds draws uniformly from the catalog with no bag or history.
func RandomKinds(rng *rand.Rand) KindSource {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return func() Kind {
		return Kinds[rng.Intn(len(Kinds))]
	}
}

// SequenceKinds cycles through kinds in order. Useful for replays and tests.
func SequenceKinds(kinds ...Kind) KindSource {
	i := 0
	return func() Kind {
		k := kinds[i%len(kinds)]
		i++
		return k
	}
}
