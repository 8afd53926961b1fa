// Package shape defines the polyomino pieces that can be placed on a board.
// Every rotation of a family is stored as its own Shape; nothing is rotated
// at runtime.
package shape

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Cell is a grid coordinate or a relative offset inside a Shape.
type Cell struct {
	X, Y int
}

// Add returns the cell translated by d.
func (c Cell) Add(d Cell) Cell { return Cell{c.X + d.X, c.Y + d.Y} }

func (c Cell) String() string {
	var b strings.Builder
	b.WriteRune('(')
	b.WriteString(strconv.Itoa(c.X))
	b.WriteRune(',')
	b.WriteString(strconv.Itoa(c.Y))
	b.WriteRune(')')

	return b.String()
}

// Shape is one rotation variant of a shape family.
type Shape struct {
	Name     string
	Family   string
	Rotation int
	Offsets  []Cell
}

// Len returns the number of squares in the shape.
func (s Shape) Len() int { return len(s.Offsets) }

// Bounds returns the smallest and largest offset on each axis.
func (s Shape) Bounds() (min, max Cell) {
	if len(s.Offsets) == 0 {
		return Cell{}, Cell{}
	}

	min, max = s.Offsets[0], s.Offsets[0]
	for _, o := range s.Offsets[1:] {
		if o.X < min.X {
			min.X = o.X
		}
		if o.Y < min.Y {
			min.Y = o.Y
		}
		if o.X > max.X {
			max.X = o.X
		}
		if o.Y > max.Y {
			max.Y = o.Y
		}
	}

	return min, max
}

func (s Shape) Width() int {
	min, max := s.Bounds()
	if len(s.Offsets) == 0 {
		return 0
	}
	return max.X - min.X + 1
}

func (s Shape) Height() int {
	min, max := s.Bounds()
	if len(s.Offsets) == 0 {
		return 0
	}
	return max.Y - min.Y + 1
}

// String formats the offsets in the same notation Parse accepts.
func (s Shape) String() string {
	return Format(s.Offsets)
}

// Format writes offsets as "(x,y),(x,y)" in their given order.
func Format(offsets []Cell) string {
	var b strings.Builder
	for i, o := range offsets {
		if i > 0 {
			b.WriteRune(',')
		}
		b.WriteString(o.String())
	}

	return b.String()
}

var errSyntax = errors.New("invalid offset notation")

// Parse reads offsets written as "(0,0),(1,0),(0,-1)". Whitespace is ignored.
func Parse(s string) ([]Cell, error) {
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return nil, fmt.Errorf("parse %q: %w", s, errSyntax)
	}

	var offsets []Cell
	for len(s) > 0 {
		if s[0] != '(' {
			return nil, fmt.Errorf("parse %q: %w", s, errSyntax)
		}
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return nil, fmt.Errorf("parse %q: %w", s, errSyntax)
		}

		x, y, ok := strings.Cut(s[1:end], ",")
		if !ok {
			return nil, fmt.Errorf("parse %q: %w", s[:end+1], errSyntax)
		}
		cx, err := strconv.Atoi(x)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", s[:end+1], err)
		}
		cy, err := strconv.Atoi(y)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", s[:end+1], err)
		}
		offsets = append(offsets, Cell{cx, cy})

		s = s[end+1:]
		if len(s) > 0 {
			if s[0] != ',' || len(s) == 1 {
				return nil, fmt.Errorf("parse %q: %w", s, errSyntax)
			}
			s = s[1:]
		}
	}

	return offsets, nil
}

// MustParse is Parse for static tables. It panics on malformed input.
func MustParse(s string) []Cell {
	offsets, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return offsets
}
