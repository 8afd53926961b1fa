// Package board holds the occupancy grid pieces are placed on and the rules
// for detecting and clearing completed rows and columns.
package board

import (
	"errors"
	"iter"
	"math"

	"github.com/plus3/blockblast/shape"
)

var (
	// ErrOutOfBounds is returned when a placement would leave the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")
	// ErrCellOccupied is returned when a placement overlaps a filled cell.
	ErrCellOccupied = errors.New("cell occupied")
)

// Sprite is the display identity stored in an occupied cell. The board never
// interprets it.
type Sprite int

type square struct {
	sprite Sprite
	filled bool
}

// Grid is a fixed-size occupancy grid stored in row-major order.
type Grid struct {
	width  int
	height int
	cells  []square
}

// New allocates an all-empty grid.
func New(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic("board dimensions must be positive")
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]square, width*height),
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) index(c shape.Cell) int {
	return c.Y*g.width + c.X
}

// InBounds reports whether c lies inside [0,width)×[0,height).
func (g *Grid) InBounds(c shape.Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Occupied reports whether c holds a square. Out-of-bounds cells are never
// occupied.
func (g *Grid) Occupied(c shape.Cell) bool {
	return g.InBounds(c) && g.cells[g.index(c)].filled
}

// At returns the sprite stored at c.
func (g *Grid) At(c shape.Cell) (Sprite, bool) {
	if !g.InBounds(c) {
		return 0, false
	}
	sq := g.cells[g.index(c)]
	return sq.sprite, sq.filled
}

// Set fills c with sprite. Out-of-bounds cells are ignored.
func (g *Grid) Set(c shape.Cell, sprite Sprite) {
	if g.InBounds(c) {
		g.cells[g.index(c)] = square{sprite: sprite, filled: true}
	}
}

// Clear empties c.
func (g *Grid) Clear(c shape.Cell) {
	if g.InBounds(c) {
		g.cells[g.index(c)] = square{}
	}
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, sq := range g.cells {
		if sq.filled {
			n++
		}
	}
	return n
}

// Fits checks a placement of offsets anchored at anchor. It reports the
// first failing offset in declaration order.
func (g *Grid) Fits(offsets []shape.Cell, anchor shape.Cell) error {
	for _, o := range offsets {
		c := anchor.Add(o)
		if !g.InBounds(c) {
			return ErrOutOfBounds
		}
		if g.cells[g.index(c)].filled {
			return ErrCellOccupied
		}
	}
	return nil
}

// Place fills every cell covered by offsets at anchor, or nothing at all.
func (g *Grid) Place(offsets []shape.Cell, anchor shape.Cell, sprite Sprite) ([]shape.Cell, error) {
	if err := g.Fits(offsets, anchor); err != nil {
		return nil, err
	}

	placed := make([]shape.Cell, 0, len(offsets))
	for _, o := range offsets {
		c := anchor.Add(o)
		g.Set(c, sprite)
		placed = append(placed, c)
	}
	return placed, nil
}

// Cells returns an iterator over every occupied cell in row-major order.
func (g *Grid) Cells() iter.Seq2[shape.Cell, Sprite] {
	return func(yield func(shape.Cell, Sprite) bool) {
		for i, sq := range g.cells {
			if !sq.filled {
				continue
			}
			if !yield(shape.Cell{X: i % g.width, Y: i / g.width}, sq.sprite) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cells := make([]square, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  cells,
	}
}

// Equal reports whether both grids have the same size, occupancy and sprites.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Nearest snaps a world position to the closest cell for squares of the
// given size. Halves round to even. The result may lie outside the grid.
func Nearest(x, y, squareSize float64) shape.Cell {
	return shape.Cell{
		X: int(math.RoundToEven(x / squareSize)),
		Y: int(math.RoundToEven(y / squareSize)),
	}
}
