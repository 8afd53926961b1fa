package presenter_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/blockblast/cue"
	"github.com/plus3/blockblast/engine"
	"github.com/plus3/blockblast/fx"
	"github.com/plus3/blockblast/presenter"
	"github.com/plus3/blockblast/shape"
	"github.com/plus3/blockblast/tray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mono = shape.Shape{Name: "Mono", Offsets: []shape.Cell{{}}}

func setup(t *testing.T, width, height int) (*engine.Engine, *presenter.Presenter, *cue.Counter) {
	t.Helper()

	counter := &cue.Counter{}
	bank := cue.NewBank(counter, rand.New(rand.NewPCG(1, 1)), nil)
	for _, a := range cue.Actions {
		bank.Register(a, cue.Clip{Name: string(a)})
	}

	p := presenter.New(fx.NewScheduler(), bank, rand.New(rand.NewPCG(2, 2)), nil)

	opts := engine.DefaultOptions()
	opts.Width, opts.Height = width, height
	opts.AutoRefill = false
	opts.LowWater = 0
	opts.Listener = p

	e, err := engine.New(opts)
	require.NoError(t, err)
	p.Attach(e)

	return e, p, counter
}

func countKinds(effects []fx.Effect) map[string]int {
	kinds := map[string]int{}
	for _, e := range effects {
		switch e.(type) {
		case *fx.Burst:
			kinds["burst"]++
		case *fx.Shake:
			kinds["shake"]++
		case *fx.Reveal:
			kinds["reveal"]++
		}
	}
	return kinds
}

func TestPlacementAndClear(t *testing.T) {
	e, p, counter := setup(t, 2, 2)
	e.AddPiece(mono, 0)

	require.True(t, e.CommitPlacement(e.AddPiece(mono, 1), shape.Cell{X: 0, Y: 0}).Accepted)
	assert.Equal(t, 1, counter.Plays(string(cue.PiecePlaced)))
	assert.Zero(t, p.Effects.Len())

	two := shape.Shape{Name: "Domino", Offsets: shape.MustParse("(0,0),(0,1)")}
	require.True(t, e.CommitPlacement(e.AddPiece(two, 1), shape.Cell{X: 1, Y: 0}).Accepted)

	// row 0 and column 1 are full
	assert.Equal(t, 2, counter.Plays(string(cue.PiecePlaced)))
	assert.Equal(t, 1, counter.Plays(string(cue.ClearLine)))
	assert.Equal(t, map[string]int{"burst": 2, "shake": 1}, countKinds(p.Effects.Active()))

	for range 100 {
		p.Effects.Once(0.05)
	}
	assert.Zero(t, p.Effects.Len())
	assert.Equal(t, fx.Vec{}, p.Camera)
}

func TestRejectionSlidesBack(t *testing.T) {
	e, p, counter := setup(t, 3, 3)

	var rejected []tray.Handle
	p.OnReject = func(h tray.Handle, reason error) { rejected = append(rejected, h) }

	h := e.AddPiece(mono, 0)
	assert.False(t, e.CommitPlacement(h, shape.Cell{X: 5, Y: 5}).Accepted)

	assert.Equal(t, []tray.Handle{h}, rejected)
	assert.Equal(t, 1, counter.Plays(string(cue.ReturnPiece)))
	assert.Zero(t, counter.Plays(string(cue.PiecePlaced)))
}

func TestSeedingStartsReveal(t *testing.T) {
	e, p, _ := setup(t, 4, 4)

	e.SeedStartingBoard(rand.New(rand.NewPCG(3, 3)), engine.DefaultSeedPolicy)
	reveal := p.Reveal()
	require.NotNil(t, reveal)
	assert.Equal(t, map[string]int{"reveal": 1}, countKinds(p.Effects.Active()))

	e.SeedStartingBoard(rand.New(rand.NewPCG(4, 4)), engine.DefaultSeedPolicy)
	assert.Equal(t, map[string]int{"reveal": 1}, countKinds(p.Effects.Active()))
	assert.NotSame(t, reveal, p.Reveal())

	for range 200 {
		p.Effects.Once(0.05)
	}
	assert.Nil(t, p.Reveal())
}
