package engine

import "fmt"

// Playfield dimensions. Row 0 is the top, where pieces spawn.
const (
	Rows = 20
	Cols = 10
)

// Grid is the matrix of settled cells. 0 is empty, 1..VariantCount is the
// value of the variant that settled there.
type Grid struct {
	cells [Rows][Cols]uint8
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{}
}

// CellAt returns the value at (row, col). Panics when out of bounds.
func (g *Grid) CellAt(row, col int) uint8 {
	g.mustContain(row, col)
	return g.cells[row][col]
}

// SetCell stores value at (row, col). Panics when out of bounds.
func (g *Grid) SetCell(row, col int, value uint8) {
	g.mustContain(row, col)
	g.cells[row][col] = value
}

// mustContain fails loudly on coordinates no caller should produce:
// every write is preceded by IsValidPlacement.
func (g *Grid) mustContain(row, col int) {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		panic(fmt.Sprintf("engine: cell (%d,%d) outside %dx%d grid", row, col, Rows, Cols))
	}
}

// IsRowComplete reports whether every cell of the row is occupied.
func (g *Grid) IsRowComplete(row int) bool {
	g.mustContain(row, 0)
	for _, v := range g.cells[row] {
		if v == 0 {
			return false
		}
	}
	return true
}

// ClearCompletedRows removes every complete row, inserting an empty row at
// the top for each one, and returns how many were removed.
//
// The scan runs bottom to top once. After a removal the rows above shift
// down into the current index, so the same index is examined again.
func (g *Grid) ClearCompletedRows() int {
	cleared := 0
	for row := Rows - 1; row >= 0; {
		if !g.IsRowComplete(row) {
			row--
			continue
		}
		g.removeRow(row)
		cleared++
	}
	return cleared
}

// removeRow drops a row and shifts everything above it down by one.
func (g *Grid) removeRow(row int) {
	for r := row; r > 0; r-- {
		g.cells[r] = g.cells[r-1]
	}
	g.cells[0] = [Cols]uint8{}
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := *g
	return &c
}

// Cells returns a copy of the full cell matrix.
func (g *Grid) Cells() [Rows][Cols]uint8 {
	return g.cells
}

// FilledCount returns the number of occupied cells.
func (g *Grid) FilledCount() int {
	n := 0
	for r := range g.cells {
		for _, v := range g.cells[r] {
			if v != 0 {
				n++
			}
		}
	}
	return n
}
