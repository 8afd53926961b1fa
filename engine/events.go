package engine

import (
	"github.com/plus3/blockblast/board"
	"github.com/plus3/blockblast/shape"
	"github.com/plus3/blockblast/tray"
)

// Listener receives the events a session produces. Callbacks run after the
// operation that produced them has finished, so they may call back into the
// engine.
type Listener interface {
	// OnBoardSeeded reports a freshly seeded starting board.
	OnBoardSeeded(Seeded)

	// OnCellsOccupied reports the squares of an accepted placement.
	OnCellsOccupied(cells []shape.Cell, sprite board.Sprite)

	// OnLinesCleared reports every row and column emptied by a placement.
	OnLinesCleared(board.Clear)

	// OnPlacementRejected reports a drop that did not fit. The piece is
	// still in the tray.
	OnPlacementRejected(h tray.Handle, reason error)

	// OnTrayLow reports that the tray shrank to the low-water mark.
	OnTrayLow(remaining int)

	// OnDeadlock reports that no piece in the tray fits anywhere and the
	// session is being reset.
	OnDeadlock()
}

// NopListener ignores every event. Embed it to implement a subset.
type NopListener struct{}

func (NopListener) OnBoardSeeded(Seeded)                       {}
func (NopListener) OnCellsOccupied([]shape.Cell, board.Sprite) {}
func (NopListener) OnLinesCleared(board.Clear)                 {}
func (NopListener) OnPlacementRejected(tray.Handle, error)     {}
func (NopListener) OnTrayLow(int)                              {}
func (NopListener) OnDeadlock()                                {}

// SeededCell is one square placed or removed while seeding.
type SeededCell struct {
	Cell   shape.Cell
	Sprite board.Sprite
}

// Seeded describes a starting board: every square placed while filling, in
// fill order, and the squares removed afterwards, in removal order.
type Seeded struct {
	Filled  []SeededCell
	Removed []SeededCell
}

// eventBuffer collects events during an operation and delivers them once the
// engine lock is released.
type eventBuffer struct {
	pending []func(Listener)
}

func (b *eventBuffer) push(fn func(Listener)) {
	b.pending = append(b.pending, fn)
}

// take hands over the queued events and resets the buffer.
func (b *eventBuffer) take() []func(Listener) {
	events := b.pending
	b.pending = nil
	return events
}
