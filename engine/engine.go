// Package engine runs a block placement session: it seeds the starting
// board, hands out batches of pieces, validates and commits drops, clears
// completed lines and recovers when no piece in the tray fits anywhere.
//
// Every exported method is one atomic step. Events produced during a step
// are queued and delivered to the Listener after the step has released the
// engine lock.
package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/plus3/blockblast/board"
	"github.com/plus3/blockblast/shape"
	"github.com/plus3/blockblast/tray"
)

// ErrUnknownPiece is the rejection reason for a handle that is not in the
// tray.
var ErrUnknownPiece = errors.New("unknown piece")

// Placement is the outcome of CommitPlacement.
type Placement struct {
	Accepted bool
	Reason   error
	Piece    tray.Handle

	// Occupied lists the cells filled by the piece, in offset order.
	Occupied []shape.Cell
	Cleared  board.Clear

	// Refilled holds the handles of a batch spawned because the tray ran
	// low.
	Refilled []tray.Handle

	// Deadlocked is set when the commit left no piece that fits and the
	// board was reset.
	Deadlocked bool
}

// TrayEntry is one piece of a tray snapshot.
type TrayEntry struct {
	Handle tray.Handle
	Piece  tray.Piece
}

// Engine owns the grid and the tray of one session.
type Engine struct {
	mu sync.Mutex

	opts   Options
	id     uuid.UUID
	logger *log.Logger

	grid  *board.Grid
	tray  *tray.Tray
	state State
	stats Stats

	events eventBuffer
}

// New validates opts and returns an initialized, empty session.
func New(opts Options) (*Engine, error) {
	opts.applyDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	e := &Engine{
		opts:   opts,
		id:     id,
		logger: opts.Logger.With("session", id.String()[:8]),
	}
	e.initialize(opts.Width, opts.Height)

	return e, nil
}

// step runs fn under the lock and then delivers whatever it queued.
func (e *Engine) step(fn func()) {
	var events []func(Listener)
	func() {
		e.mu.Lock()
		defer func() {
			events = e.events.take()
			e.mu.Unlock()
		}()
		fn()
	}()

	for _, ev := range events {
		ev(e.opts.Listener)
	}
}

// Initialize discards the board and the tray and starts over with an empty
// grid of the given size.
func (e *Engine) Initialize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d board", ErrInvalidOptions, width, height)
	}
	e.step(func() { e.initialize(width, height) })
	return nil
}

func (e *Engine) initialize(width, height int) {
	e.opts.Width, e.opts.Height = width, height
	e.grid = board.New(width, height)
	e.tray = tray.New()
	e.state = Empty
	e.logger.Debug("initialized", "width", width, "height", height)
}

// SeedStartingBoard fills every empty cell with a random sprite and then
// removes a random share of the squares again.
// A policy with a non-positive bound uses the session's policy.
func (e *Engine) SeedStartingBoard(rng Rand, policy SeedPolicy) Seeded {
	var seeded Seeded
	e.step(func() { seeded = e.seed(rng, policy) })
	return seeded
}

func (e *Engine) seed(rng Rand, policy SeedPolicy) Seeded {
	if policy.From <= 0 || policy.To <= 0 {
		policy = e.opts.Seed
	}
	e.state = Filling

	var seeded Seeded
	w, h := e.grid.Width(), e.grid.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := shape.Cell{X: x, Y: y}
			if e.grid.Occupied(c) {
				continue
			}
			sprite := board.Sprite(rng.IntN(e.opts.PaletteSize))
			e.grid.Set(c, sprite)
			seeded.Filled = append(seeded.Filled, SeededCell{Cell: c, Sprite: sprite})
		}
	}

	total := float64(w * h)
	from, to := total/policy.From, total/policy.To
	remove := int(from + (to-from)*rng.Float64())
	remove = max(0, min(remove, w*h))

	for range remove {
		for {
			c := shape.Cell{X: rng.IntN(w), Y: rng.IntN(h)}
			if sprite, ok := e.grid.At(c); ok {
				e.grid.Clear(c)
				seeded.Removed = append(seeded.Removed, SeededCell{Cell: c, Sprite: sprite})
				break
			}
		}
	}

	e.stats.Seeds++
	e.state = Active
	e.events.push(func(l Listener) { l.OnBoardSeeded(seeded) })
	e.logger.Debug("seeded board", "filled", len(seeded.Filled), "removed", len(seeded.Removed))

	return seeded
}

// SpawnBatch appends n random pieces to the tray. Pieces already in the tray
// are kept.
func (e *Engine) SpawnBatch(n int, rng Rand) []tray.Handle {
	var handles []tray.Handle
	e.step(func() { handles = e.spawnBatch(n, rng) })
	return handles
}

func (e *Engine) spawnBatch(n int, rng Rand) []tray.Handle {
	if held := e.tray.Len(); held > 0 {
		e.logger.Debug("spawning into a non-empty tray", "held", held)
	}

	handles := make([]tray.Handle, 0, n)
	for slot := range n {
		handles = append(handles, e.tray.Add(tray.Piece{
			Shape:  e.opts.Catalog.RandomShape(rng),
			Sprite: batchSprite(slot, e.opts.PaletteSize),
		}))
	}

	if e.state == Empty {
		e.state = Active
	}
	e.stats.Batches++

	return handles
}

// batchSprite cycles through all but the last palette entry.
func batchSprite(slot, paletteSize int) board.Sprite {
	if paletteSize <= 1 {
		return 0
	}
	return board.Sprite(slot % (paletteSize - 1))
}

// AddPiece puts a specific piece into the tray.
func (e *Engine) AddPiece(s shape.Shape, sprite board.Sprite) tray.Handle {
	var h tray.Handle
	e.step(func() {
		h = e.tray.Add(tray.Piece{Shape: s, Sprite: sprite})
		if e.state == Empty {
			e.state = Active
		}
	})
	return h
}

// CheckPlacement reports why s cannot be placed at anchor, or nil if it can.
func (e *Engine) CheckPlacement(s shape.Shape, anchor shape.Cell) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.grid.Fits(s.Offsets, anchor)
}

// ValidatePlacement reports whether every cell of s at anchor is inside the
// grid and empty.
func (e *Engine) ValidatePlacement(s shape.Shape, anchor shape.Cell) bool {
	return e.CheckPlacement(s, anchor) == nil
}

// CommitPlacement drops the piece h at anchor. A rejected drop changes
// nothing and leaves the piece in the tray.
func (e *Engine) CommitPlacement(h tray.Handle, anchor shape.Cell) Placement {
	var p Placement
	e.step(func() { p = e.commit(h, anchor) })
	return p
}

func (e *Engine) commit(h tray.Handle, anchor shape.Cell) Placement {
	piece, ok := e.tray.Get(h)
	if !ok || piece.Pending {
		return e.reject(h, ErrUnknownPiece)
	}

	occupied, err := e.grid.Place(piece.Shape.Offsets, anchor, piece.Sprite)
	if err != nil {
		return e.reject(h, err)
	}

	sprite := piece.Sprite
	e.stats.Placements++
	e.events.push(func(l Listener) { l.OnCellsOccupied(occupied, sprite) })
	e.logger.Debug("placed", "piece", h, "shape", piece.Shape.Name, "anchor", anchor)

	e.tray.MarkPending(h)
	cleared := e.detectAndClear()
	e.tray.Sweep()

	p := Placement{
		Accepted: true,
		Piece:    h,
		Occupied: occupied,
		Cleared:  cleared,
		Refilled: e.checkTrayLow(),
	}
	p.Deadlocked = e.checkDeadlock()

	return p
}

func (e *Engine) reject(h tray.Handle, reason error) Placement {
	e.stats.Rejections++
	e.events.push(func(l Listener) { l.OnPlacementRejected(h, reason) })
	e.logger.Debug("placement rejected", "piece", h, "reason", reason)

	return Placement{Piece: h, Reason: reason}
}

func (e *Engine) checkTrayLow() []tray.Handle {
	remaining := e.tray.Len()
	if remaining > e.opts.LowWater {
		return nil
	}

	e.events.push(func(l Listener) { l.OnTrayLow(remaining) })
	if !e.opts.AutoRefill {
		return nil
	}
	return e.spawnBatch(e.opts.BatchSize, e.opts.Rand)
}

// DetectAndClearLines empties every full row and column in a single pass.
func (e *Engine) DetectAndClearLines() board.Clear {
	var cleared board.Clear
	e.step(func() { cleared = e.detectAndClear() })
	return cleared
}

func (e *Engine) detectAndClear() board.Clear {
	cleared := e.grid.ClearLines()
	if cleared.Empty() {
		return cleared
	}

	e.stats.Lines += len(cleared.Lines)
	e.stats.CellsCleared += len(cleared.Cells)
	e.events.push(func(l Listener) { l.OnLinesCleared(cleared) })
	e.logger.Debug("lines cleared", "rows", cleared.Rows, "columns", cleared.Columns)

	return cleared
}

// CanAnyPieceFit reports whether at least one of shapes has a valid anchor
// on the current board. It is false for no shapes.
func (e *Engine) CanAnyPieceFit(shapes []shape.Shape) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.canAnyPieceFit(shapes)
}

func (e *Engine) canAnyPieceFit(shapes []shape.Shape) bool {
	w, h := e.grid.Width(), e.grid.Height()
	for _, s := range shapes {
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				if e.grid.Fits(s.Offsets, shape.Cell{X: x, Y: y}) == nil {
					return true
				}
			}
		}
	}
	return false
}

// CheckDeadlock resets the session when the tray holds pieces and none of
// them fits. It reports whether that happened.
func (e *Engine) CheckDeadlock() bool {
	var deadlocked bool
	e.step(func() { deadlocked = e.checkDeadlock() })
	return deadlocked
}

func (e *Engine) checkDeadlock() bool {
	shapes := e.tray.Shapes()
	if len(shapes) == 0 || e.canAnyPieceFit(shapes) {
		return false
	}
	e.handleDeadlock()
	return true
}

// HandleDeadlock discards the tray, reseeds the board and spawns a fresh
// batch.
func (e *Engine) HandleDeadlock() {
	e.step(e.handleDeadlock)
}

func (e *Engine) handleDeadlock() {
	e.state = Deadlock
	e.stats.Deadlocks++
	e.events.push(func(l Listener) { l.OnDeadlock() })
	e.logger.Info("no valid moves left, resetting the board", "tray", e.tray.Len())

	e.tray.Clear()
	e.seed(e.opts.Rand, e.opts.Seed)
	e.spawnBatch(e.opts.BatchSize, e.opts.Rand)
}

// State returns the current phase.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Board returns a copy of the grid.
func (e *Engine) Board() *board.Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.Clone()
}

// Tray returns a copy of every piece waiting to be placed, in spawn order.
func (e *Engine) Tray() []TrayEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := make([]TrayEntry, 0, e.tray.Len())
	for h, p := range e.tray.All() {
		entries = append(entries, TrayEntry{Handle: h, Piece: *p})
	}
	return entries
}

// Piece returns a copy of the piece behind h.
func (e *Engine) Piece(h tray.Handle) (tray.Piece, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.tray.Get(h)
	if !ok || p.Pending {
		return tray.Piece{}, false
	}
	return *p, true
}

func (e *Engine) Width() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.Width()
}

func (e *Engine) Height() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.Height()
}

// SessionID identifies the session in logs.
func (e *Engine) SessionID() uuid.UUID { return e.id }

// Options returns the options the engine runs with, defaults applied.
func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

// Stats returns the session counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// SetLogger replaces the engine logger.
func (e *Engine) SetLogger(l *log.Logger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logger = l.With("session", e.id.String()[:8])
}
