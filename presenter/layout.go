package presenter

import (
	"github.com/plus3/blockblast/board"
	"github.com/plus3/blockblast/fx"
	"github.com/plus3/blockblast/shape"
)

// TrayScale is the size of a tray piece relative to a board square.
const TrayScale = 0.5

// Layout maps board cells and tray slots to screen pixels. Cell
// coordinates are cell centres, so cell (x,y) is drawn around
// CellCenter(x,y).
type Layout struct {
	Square float64
	Origin fx.Vec // top-left corner of the board

	Width, Height int

	TrayTop    float64
	TrayHeight float64
	Slots      int
}

// NewLayout places a width×height board of the given square size at
// margin and the tray right below it.
func NewLayout(width, height, slots int, square, margin float64) Layout {
	return Layout{
		Square:     square,
		Origin:     fx.Vec{X: margin, Y: margin},
		Width:      width,
		Height:     height,
		TrayTop:    margin*2 + float64(height)*square,
		TrayHeight: square * 3,
		Slots:      max(1, slots),
	}
}

// BoardSize returns the board extent in pixels.
func (l Layout) BoardSize() fx.Vec {
	return fx.Vec{X: float64(l.Width) * l.Square, Y: float64(l.Height) * l.Square}
}

// ToScreen converts a position in cell units to pixels.
func (l Layout) ToScreen(p fx.Vec) fx.Vec {
	return l.Origin.Add(p.Add(fx.Vec{X: 0.5, Y: 0.5}).Scale(l.Square))
}

func (l Layout) CellCenter(c shape.Cell) fx.Vec {
	return l.ToScreen(fx.Vec{X: float64(c.X), Y: float64(c.Y)})
}

// AnchorAt snaps the pixel position of a piece's origin square to the
// nearest cell. The cell may be off the board.
func (l Layout) AnchorAt(p fx.Vec) shape.Cell {
	rel := p.Sub(l.Origin).Sub(fx.Vec{X: l.Square / 2, Y: l.Square / 2})
	return board.Nearest(rel.X, rel.Y, l.Square)
}

func (l Layout) slotWidth(count int) float64 {
	return l.BoardSize().X / float64(max(l.Slots, count))
}

// SlotOrigin returns where the origin square of s sits when the piece rests
// in slot i of count pieces, drawn at TrayScale.
func (l Layout) SlotOrigin(i, count int, s shape.Shape) fx.Vec {
	w := l.slotWidth(count)
	center := fx.Vec{
		X: l.Origin.X + (float64(i)+0.5)*w,
		Y: l.TrayTop + l.TrayHeight/2,
	}

	lo, hi := s.Bounds()
	mid := fx.Vec{X: float64(lo.X+hi.X) / 2, Y: float64(lo.Y+hi.Y) / 2}
	return center.Sub(mid.Scale(l.Square * TrayScale))
}

// SlotAt returns the slot under the pixel position p, if any.
func (l Layout) SlotAt(p fx.Vec, count int) (int, bool) {
	if p.Y < l.TrayTop || p.Y >= l.TrayTop+l.TrayHeight {
		return 0, false
	}
	x := p.X - l.Origin.X
	if x < 0 {
		return 0, false
	}
	i := int(x / l.slotWidth(count))
	if i >= count {
		return 0, false
	}
	return i, true
}
