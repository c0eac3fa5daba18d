package tetris

const (
	Rows = 20
	Cols = 10
)

// Board is the well. Row 0 is the top.
type Board struct {
	rows  int
	cols  int
	cells [][]Kind
}

func NewBoard(rows, cols int) *Board {
	b := &Board{rows: rows, cols: cols}
	b.Reset()
	return b
}

func (b *Board) Reset() {
	b.cells = make([][]Kind, b.rows)
	for i := range b.cells {
		b.cells[i] = make([]Kind, b.cols)
	}
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// At returns the kind locked at (row, col), or None when empty or out of range.
func (b *Board) At(row, col int) Kind {
	if !b.inBounds(row, col) {
		return None
	}
	return b.cells[row][col]
}

// IsOccupied treats every out-of-range cell as occupied; walls and floor are
// detected through this.
func (b *Board) IsOccupied(row, col int) bool {
	if !b.inBounds(row, col) {
		return true
	}
	return b.cells[row][col] != None
}

// Lock writes kind into each cell. Cells outside the board are skipped.
func (b *Board) Lock(kind Kind, cells []Point) {
	for _, c := range cells {
		if b.inBounds(c.Y, c.X) {
			b.cells[c.Y][c.X] = kind
		}
	}
}

// FullRows lists the indices of complete rows, bottom first.
func (b *Board) FullRows() []int {
	var full []int
	for y := b.rows - 1; y >= 0; y-- {
		if b.rowFull(y) {
			full = append(full, y)
		}
	}
	return full
}

// ClearFullRows removes every complete row, shifting the rows above down and
// inserting empty rows at the top. It returns the number removed.
func (b *Board) ClearFullRows() int {
	cleared := 0
	for y := b.rows - 1; y >= 0; y-- {
		if !b.rowFull(y) {
			continue
		}
		cleared++
		for pull := y; pull > 0; pull-- {
			b.cells[pull] = b.cells[pull-1]
		}
		b.cells[0] = make([]Kind, b.cols)
		y++
	}
	return cleared
}

// Snapshot returns a deep copy of the grid.
func (b *Board) Snapshot() [][]Kind {
	out := make([][]Kind, b.rows)
	for y, row := range b.cells {
		out[y] = append([]Kind(nil), row...)
	}
	return out
}

func (b *Board) rowFull(y int) bool {
	for _, v := range b.cells[y] {
		if v == None {
			return false
		}
	}
	return true
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}
