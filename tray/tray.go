// Package tray holds the pieces offered to the player that have not been
// placed yet. Pieces are addressed by stable handles and removed explicitly.
package tray

import (
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockblast/board"
	"github.com/plus3/blockblast/shape"
)

// Piece is an instance of a shape waiting in the tray.
type Piece struct {
	Shape  shape.Shape
	Sprite board.Sprite

	// Pending marks a piece that has been committed and will be erased by
	// the next Sweep. Pending pieces are skipped by All and Shapes.
	Pending bool
}

// Tray is an ordered arena of pieces.
type Tray struct {
	slots slotStorage
	live  *intmap.Map[Handle, uint32]
	order []Handle
}

// New creates an empty tray.
func New() *Tray {
	return &Tray{
		live: intmap.New[Handle, uint32](8),
	}
}

// Add stores a piece at the end of the tray.
func (t *Tray) Add(p Piece) Handle {
	index, generation := t.slots.insert(p)
	h := NewHandle(generation, uint32(index))
	t.live.Put(h, uint32(index))
	t.order = append(t.order, h)
	return h
}

// Get resolves a handle. The pointer stays valid until the piece is removed.
func (t *Tray) Get(h Handle) (*Piece, bool) {
	if !t.live.Has(h) {
		return nil, false
	}
	p := t.slots.get(int(h.Index()), h.Generation())
	return p, p != nil
}

// Contains reports whether h refers to a piece still in the tray.
func (t *Tray) Contains(h Handle) bool {
	return t.live.Has(h)
}

// Remove erases the piece behind h. It reports whether anything was removed.
func (t *Tray) Remove(h Handle) bool {
	if !t.live.Del(h) {
		return false
	}
	t.slots.erase(int(h.Index()))
	if i := slices.Index(t.order, h); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
	return true
}

// MarkPending flags a piece for removal at the next Sweep.
func (t *Tray) MarkPending(h Handle) bool {
	p, ok := t.Get(h)
	if !ok {
		return false
	}
	p.Pending = true
	return true
}

// Sweep erases every pending piece and returns how many were erased.
func (t *Tray) Sweep() int {
	var pending []Handle
	for _, h := range t.order {
		if p, ok := t.Get(h); ok && p.Pending {
			pending = append(pending, h)
		}
	}
	for _, h := range pending {
		t.Remove(h)
	}
	return len(pending)
}

// Clear erases every piece and returns how many were erased.
func (t *Tray) Clear() int {
	n := len(t.order)
	for _, h := range slices.Clone(t.order) {
		t.Remove(h)
	}
	return n
}

// Len returns the number of pieces held, pending ones included.
func (t *Tray) Len() int {
	return len(t.order)
}

// Handles returns the handles of every held piece in insertion order.
func (t *Tray) Handles() []Handle {
	return slices.Clone(t.order)
}

// All iterates over pieces that are not pending, in insertion order.
func (t *Tray) All() iter.Seq2[Handle, *Piece] {
	return func(yield func(Handle, *Piece) bool) {
		for _, h := range t.order {
			p, ok := t.Get(h)
			if !ok || p.Pending {
				continue
			}
			if !yield(h, p) {
				return
			}
		}
	}
}

// Shapes returns the shapes of every piece that is not pending.
func (t *Tray) Shapes() []shape.Shape {
	shapes := make([]shape.Shape, 0, len(t.order))
	for _, p := range t.All() {
		shapes = append(shapes, p.Shape)
	}
	return shapes
}
