package tetris

import "strings"

// Default playfield dimensions. The top HiddenRows rows are a spawn buffer
// that front ends do not draw.
const (
	DefaultRows = 22
	DefaultCols = 10
	HiddenRows  = 2
)

// Position is a (row, column) cell coordinate. Row 0 is the top of the grid.
type Position struct {
	Row, Col int
}

// Add returns p translated by o.
func (p Position) Add(o Position) Position {
	return Position{Row: p.Row + o.Row, Col: p.Col + o.Col}
}

// Grid is a fixed-size matrix of placed tiles stored row-major.
// Each cell holds Empty or the Kind of the piece that was placed there.
type Grid struct {
	rows  int
	cols  int
	cells []Kind
}

// NewGrid creates an empty grid. It panics if either dimension is not positive.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic("tetris: grid dimensions must be positive")
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Kind, rows*cols),
	}
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// IsInside reports whether (row, col) addresses a cell of the grid.
func (g *Grid) IsInside(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// IsEmpty reports whether (row, col) is inside the grid and holds no tile.
// Cells outside the grid are never empty, which is what stops collision checks
// and drop-distance scans at the walls and floor.
func (g *Grid) IsEmpty(row, col int) bool {
	return g.IsInside(row, col) && g.cells[row*g.cols+col] == Empty
}

// At returns the tile at (row, col), or Empty when the cell is outside the grid.
func (g *Grid) At(row, col int) Kind {
	if !g.IsInside(row, col) {
		return Empty
	}
	return g.cells[row*g.cols+col]
}

// Set writes a tile into (row, col). Writes outside the grid are ignored.
func (g *Grid) Set(row, col int, k Kind) {
	if !g.IsInside(row, col) || !k.Valid() {
		return
	}
	g.cells[row*g.cols+col] = k
}

// Row returns a copy of one row of the grid.
func (g *Grid) Row(row int) []Kind {
	out := make([]Kind, g.cols)
	if row >= 0 && row < g.rows {
		copy(out, g.cells[row*g.cols:(row+1)*g.cols])
	}
	return out
}

func (g *Grid) IsRowFull(row int) bool {
	for col := 0; col < g.cols; col++ {
		if g.cells[row*g.cols+col] == Empty {
			return false
		}
	}
	return true
}

func (g *Grid) IsRowEmpty(row int) bool {
	for col := 0; col < g.cols; col++ {
		if g.cells[row*g.cols+col] != Empty {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row, shifts the rows above them down and
// fills the top with empty rows. It returns the number of rows removed.
func (g *Grid) ClearFullRows() int {
	cleared := 0
	for row := g.rows - 1; row >= 0; row-- {
		if g.IsRowFull(row) {
			g.clearRow(row)
			cleared++
			continue
		}
		if cleared > 0 {
			g.moveRowDown(row, cleared)
		}
	}
	for row := 0; row < cleared; row++ {
		g.clearRow(row)
	}
	return cleared
}

func (g *Grid) clearRow(row int) {
	clear(g.cells[row*g.cols : (row+1)*g.cols])
}

func (g *Grid) moveRowDown(row, n int) {
	copy(g.cells[(row+n)*g.cols:(row+n+1)*g.cols], g.cells[row*g.cols:(row+1)*g.cols])
	g.clearRow(row)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		rows:  g.rows,
		cols:  g.cols,
		cells: append([]Kind(nil), g.cells...),
	}
}

// String renders the grid one line per row, '.' for empty cells and the kind
// letter for tiles.
func (g *Grid) String() string {
	var b strings.Builder
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			b.WriteByte(g.At(row, col).Letter())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
