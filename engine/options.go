package engine

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/plus3/blockblast/shape"
)

// ErrInvalidOptions is wrapped by New when an option is out of range.
var ErrInvalidOptions = errors.New("invalid engine options")

// Rand is the random source the engine draws from. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// SeedPolicy controls how much of a freshly filled board is removed again.
// The number of removed cells is drawn uniformly between total/From and
// total/To and truncated.
type SeedPolicy struct {
	From float64
	To   float64
}

// DefaultSeedPolicy removes between 66.7% and 80% of the cells.
var DefaultSeedPolicy = SeedPolicy{From: 1.25, To: 1.5}

// Options configures an Engine. Start from DefaultOptions; nil dependencies
// fall back to defaults.
type Options struct {
	Width  int
	Height int

	// PaletteSize is the number of distinct sprites a host can draw.
	PaletteSize int

	// BatchSize is the number of pieces spawned per batch.
	BatchSize int

	// LowWater is the tray size at or below which OnTrayLow fires.
	LowWater int

	// AutoRefill spawns a batch in the same step the tray runs low.
	AutoRefill bool

	Seed SeedPolicy

	// Rand feeds refills and deadlock recovery.
	Rand Rand

	Catalog  *shape.Catalog
	Listener Listener
	Logger   *log.Logger
}

// DefaultOptions mirrors the standard game: a 10×10 board and four pieces
// per batch.
func DefaultOptions() Options {
	return Options{
		Width:       10,
		Height:      10,
		PaletteSize: 8,
		BatchSize:   4,
		LowWater:    1,
		AutoRefill:  true,
		Seed:        DefaultSeedPolicy,
	}
}

func (o *Options) applyDefaults() {
	if o.Seed == (SeedPolicy{}) {
		o.Seed = DefaultSeedPolicy
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.Catalog == nil {
		o.Catalog = shape.Default()
	}
	if o.Listener == nil {
		o.Listener = NopListener{}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

func (o *Options) validate() error {
	switch {
	case o.Width <= 0:
		return fmt.Errorf("%w: width %d", ErrInvalidOptions, o.Width)
	case o.Height <= 0:
		return fmt.Errorf("%w: height %d", ErrInvalidOptions, o.Height)
	case o.PaletteSize <= 0:
		return fmt.Errorf("%w: palette size %d", ErrInvalidOptions, o.PaletteSize)
	case o.BatchSize <= 0:
		return fmt.Errorf("%w: batch size %d", ErrInvalidOptions, o.BatchSize)
	case o.LowWater < 0:
		return fmt.Errorf("%w: low water %d", ErrInvalidOptions, o.LowWater)
	case o.Seed.From <= 0 || o.Seed.To <= 0:
		return fmt.Errorf("%w: seed policy %+v", ErrInvalidOptions, o.Seed)
	}
	return nil
}
