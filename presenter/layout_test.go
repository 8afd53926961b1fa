package presenter_test

import (
	"testing"

	"github.com/plus3/blockblast/fx"
	"github.com/plus3/blockblast/presenter"
	"github.com/plus3/blockblast/shape"
	"github.com/stretchr/testify/assert"
)

func TestLayoutCells(t *testing.T) {
	l := presenter.NewLayout(10, 10, 4, 40, 20)

	assert.Equal(t, fx.Vec{X: 400, Y: 400}, l.BoardSize())
	assert.Equal(t, fx.Vec{X: 40, Y: 40}, l.CellCenter(shape.Cell{}))
	assert.Equal(t, fx.Vec{X: 160, Y: 80}, l.CellCenter(shape.Cell{X: 3, Y: 1}))

	assert.Equal(t, shape.Cell{X: 3, Y: 1}, l.AnchorAt(fx.Vec{X: 150, Y: 70}))
	assert.Equal(t, shape.Cell{X: -1, Y: 0}, l.AnchorAt(fx.Vec{X: 0, Y: 40}))
	// exactly half way between columns 0 and 1 rounds to even
	assert.Equal(t, shape.Cell{X: 0, Y: 0}, l.AnchorAt(fx.Vec{X: 60, Y: 40}))
	assert.Equal(t, shape.Cell{X: 2, Y: 0}, l.AnchorAt(fx.Vec{X: 140, Y: 40}))

	for _, c := range []shape.Cell{{}, {X: 9, Y: 9}, {X: 4, Y: 7}} {
		assert.Equal(t, c, l.AnchorAt(l.CellCenter(c)))
	}
}

func TestLayoutSlots(t *testing.T) {
	l := presenter.NewLayout(10, 10, 4, 40, 20)
	assert.Equal(t, 440.0, l.TrayTop)

	mono := shape.Shape{Name: "Mono", Offsets: shape.MustParse("(0,0)")}
	assert.Equal(t, fx.Vec{X: 70, Y: 500}, l.SlotOrigin(0, 4, mono))
	assert.Equal(t, fx.Vec{X: 370, Y: 500}, l.SlotOrigin(3, 4, mono))

	line := shape.Shape{Name: "Line3", Offsets: shape.MustParse("(0,0),(1,0),(2,0)")}
	assert.Equal(t, fx.Vec{X: 50, Y: 500}, l.SlotOrigin(0, 4, line))

	// five pieces share the same width
	assert.Equal(t, fx.Vec{X: 60, Y: 500}, l.SlotOrigin(0, 5, mono))

	i, ok := l.SlotAt(fx.Vec{X: 230, Y: 460}, 4)
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = l.SlotAt(fx.Vec{X: 230, Y: 400}, 4)
	assert.False(t, ok)
	_, ok = l.SlotAt(fx.Vec{X: 330, Y: 460}, 3)
	assert.False(t, ok)
	_, ok = l.SlotAt(fx.Vec{X: 10, Y: 460}, 4)
	assert.False(t, ok)
}
