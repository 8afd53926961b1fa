package board

import "github.com/plus3/blockblast/shape"

// Axis tells a row from a column.
type Axis int

const (
	Row Axis = iota
	Column
)

func (a Axis) String() string {
	if a == Column {
		return "column"
	}
	return "row"
}

// Line is one completed row or column.
type Line struct {
	Axis  Axis
	Index int
}

// Centroid returns the mean of the line's cell coordinates, where effects
// for it are anchored.
func (l Line) Centroid(width, height int) (x, y float64) {
	if l.Axis == Column {
		return float64(l.Index), float64(height-1) / 2
	}
	return float64(width-1) / 2, float64(l.Index)
}

// Clear describes the completed lines of a grid and the cells they cover.
// A cell on both a full row and a full column appears in Cells once.
type Clear struct {
	Rows    []int
	Columns []int
	Lines   []Line
	Cells   []shape.Cell
}

// Empty reports whether nothing was cleared.
func (c Clear) Empty() bool { return len(c.Cells) == 0 }

// Lines scans every row and every column independently. It does not modify
// the grid.
func (g *Grid) Lines() Clear {
	var result Clear

	for y := 0; y < g.height; y++ {
		if g.rowFull(y) {
			result.Rows = append(result.Rows, y)
			result.Lines = append(result.Lines, Line{Axis: Row, Index: y})
		}
	}

	for x := 0; x < g.width; x++ {
		if g.columnFull(x) {
			result.Columns = append(result.Columns, x)
			result.Lines = append(result.Lines, Line{Axis: Column, Index: x})
		}
	}

	if len(result.Lines) == 0 {
		return result
	}

	marked := make([]bool, len(g.cells))
	for _, y := range result.Rows {
		for x := 0; x < g.width; x++ {
			marked[y*g.width+x] = true
		}
	}
	for _, x := range result.Columns {
		for y := 0; y < g.height; y++ {
			marked[y*g.width+x] = true
		}
	}

	for i, m := range marked {
		if m {
			result.Cells = append(result.Cells, shape.Cell{X: i % g.width, Y: i / g.width})
		}
	}

	return result
}

// ClearLines empties every cell of every completed row and column in one
// pass. Emptying a line never causes another to be re-checked.
func (g *Grid) ClearLines() Clear {
	result := g.Lines()
	for _, c := range result.Cells {
		g.Clear(c)
	}
	return result
}

func (g *Grid) rowFull(y int) bool {
	for x := 0; x < g.width; x++ {
		if !g.cells[y*g.width+x].filled {
			return false
		}
	}
	return true
}

func (g *Grid) columnFull(x int) bool {
	for y := 0; y < g.height; y++ {
		if !g.cells[y*g.width+x].filled {
			return false
		}
	}
	return true
}
