package fx

import (
	"github.com/plus3/blockblast/board"
	"github.com/plus3/blockblast/engine"
)

const (
	RevealFillDuration   = 1.0
	RevealRemoveDuration = 1.0
)

// Reveal replays the seeding of a board: rows fill in one after another,
// then the removed squares disappear one by one. View holds what should be
// drawn while the reveal runs.
type Reveal struct {
	FillDuration   float64
	RemoveDuration float64

	seeded  engine.Seeded
	view    *board.Grid
	height  int
	filled  int
	removed int
	elapsed float64
}

// NewReveal builds the reveal of seeded, which produced final.
func NewReveal(final *board.Grid, seeded engine.Seeded) *Reveal {
	view := final.Clone()
	for i := len(seeded.Removed) - 1; i >= 0; i-- {
		view.Set(seeded.Removed[i].Cell, seeded.Removed[i].Sprite)
	}
	for _, c := range seeded.Filled {
		view.Clear(c.Cell)
	}

	return &Reveal{
		FillDuration:   RevealFillDuration,
		RemoveDuration: RevealRemoveDuration,
		seeded:         seeded,
		view:           view,
		height:         final.Height(),
	}
}

// View returns the staged board. It is owned by the reveal.
func (r *Reveal) View() *board.Grid { return r.view }

// Done reports whether every step has been shown.
func (r *Reveal) Done() bool {
	return r.filled == len(r.seeded.Filled) && r.removed == len(r.seeded.Removed)
}

func (r *Reveal) Update(frame *Frame) bool {
	perRow := r.FillDuration / float64(r.height)
	rows := r.height
	if perRow > 0 {
		rows = min(r.height, int(r.elapsed/perRow)+1)
	}
	for r.filled < len(r.seeded.Filled) && r.seeded.Filled[r.filled].Cell.Y < rows {
		c := r.seeded.Filled[r.filled]
		r.view.Set(c.Cell, c.Sprite)
		r.filled++
	}

	if n := len(r.seeded.Removed); r.filled == len(r.seeded.Filled) && r.elapsed >= r.FillDuration && n > 0 {
		shown := n
		if perRemoval := r.RemoveDuration / float64(n); perRemoval > 0 {
			shown = min(n, int((r.elapsed-r.FillDuration)/perRemoval)+1)
		}
		for ; r.removed < shown; r.removed++ {
			r.view.Clear(r.seeded.Removed[r.removed].Cell)
		}
	}

	r.elapsed += frame.DeltaTime
	return r.Done()
}
