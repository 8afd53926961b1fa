package debugui

import (
	"testing"

	"github.com/plus3/blockblast/engine"
	"github.com/plus3/blockblast/shape"
	"github.com/plus3/blockblast/tray"
	"github.com/stretchr/testify/assert"
)

func entry(h tray.Handle, name string) engine.TrayEntry {
	return engine.TrayEntry{Handle: h, Piece: tray.Piece{Shape: shape.Shape{Name: name}}}
}

func TestFilterTray(t *testing.T) {
	entries := []engine.TrayEntry{
		entry(1, "L/0"),
		entry(2, "Line3/1"),
		entry(3, "BigL/2"),
		entry(4, "Square2/0"),
	}

	assert.Equal(t, entries, filterTray(entries, ""))
	assert.Equal(t, entries, filterTray(entries, "   "))
	assert.Equal(t, []engine.TrayEntry{entries[0], entries[1], entries[2]}, filterTray(entries, "l"))
	assert.Equal(t, []engine.TrayEntry{entries[1]}, filterTray(entries, "LINE"))
	assert.Empty(t, filterTray(entries, "J/"))
}

func TestPage(t *testing.T) {
	tests := []struct {
		total, size, page int
		start, end        int
	}{
		{0, 10, 0, 0, 0},
		{5, 10, 0, 0, 5},
		{25, 10, 1, 10, 20},
		{25, 10, 2, 20, 25},
		{25, 10, 3, 25, 25},
	}

	for _, tt := range tests {
		start, end := page(tt.total, tt.size, tt.page)
		assert.Equal(t, tt.start, start)
		assert.Equal(t, tt.end, end)
	}
}

func TestHistory(t *testing.T) {
	h := newHistory(3)
	assert.Zero(t, h.average())

	h.push(3)
	assert.Equal(t, float32(3), h.average())

	h.push(6)
	h.push(9)
	h.push(12)
	assert.Equal(t, []float32{12, 6, 9}, h.samples)
	assert.Equal(t, float32(9), h.average())

	assert.Len(t, newHistory(0).samples, 1)
}
