package shape

import (
	"strconv"
	"sync"
)

// Rand is the subset of *math/rand/v2.Rand the catalog draws from.
type Rand interface {
	IntN(n int) int
}

// family lists every rotation of one shape family in offset notation.
type family struct {
	name      string
	rotations []string
}

var families = []family{
	{"Mono", []string{
		"(0,0)",
	}},
	{"Square2", []string{
		"(0,0),(1,0),(0,1),(1,1)",
	}},
	{"Square3", []string{
		"(0,0),(1,0),(2,0),(0,1),(1,1),(2,1),(0,2),(1,2),(2,2)",
	}},
	{"Rect2x3", []string{
		"(0,0),(1,0),(0,1),(1,1),(0,2),(1,2)",
	}},
	{"Rect3x2", []string{
		"(0,0),(1,0),(2,0),(0,1),(1,1),(2,1)",
	}},
	{"Line4", []string{
		"(0,0),(0,1),(0,2),(0,3)",
		"(0,0),(1,0),(2,0),(3,0)",
	}},
	{"Line3", []string{
		"(0,0),(0,1),(0,2)",
		"(0,0),(1,0),(2,0)",
	}},
	{"Line5", []string{
		"(0,0),(0,1),(0,2),(0,3),(0,4)",
		"(0,0),(1,0),(2,0),(3,0),(4,0)",
	}},
	{"L", []string{
		"(0,0),(1,0),(2,0),(2,1)",
		"(0,0),(0,1),(0,2),(1,0)",
		"(0,0),(1,0),(2,0),(0,-1)",
		"(0,1),(1,1),(1,0),(1,2)",
	}},
	{"J", []string{
		"(0,1),(0,0),(1,0),(2,0)",
		"(0,0),(0,1),(1,1),(2,1)",
		"(0,0),(1,0),(2,0),(2,-1)",
		"(0,0),(1,0),(1,1),(1,2)",
	}},
	{"BigL", []string{
		"(0,0),(0,1),(0,2),(1,0),(2,0)",
		"(0,0),(1,0),(2,0),(2,1),(2,2)",
		"(0,0),(0,1),(0,2),(1,2),(2,2)",
		"(0,0),(1,0),(2,0),(0,1),(0,2)",
	}},
}

// Catalog is the immutable library of placeable shapes.
type Catalog struct {
	shapes   []Shape
	families []string
}

// NewCatalog builds the standard catalog. Rotations appear in declaration
// order, family after family.
func NewCatalog() *Catalog {
	c := &Catalog{}
	for _, f := range families {
		c.families = append(c.families, f.name)
		for r, notation := range f.rotations {
			c.shapes = append(c.shapes, Shape{
				Name:     f.name + "/" + strconv.Itoa(r),
				Family:   f.name,
				Rotation: r,
				Offsets:  MustParse(notation),
			})
		}
	}
	return c
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog, built on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = NewCatalog()
	})
	return defaultCatalog
}

// AllShapes returns every rotation variant. The slice is a copy; the offsets
// are shared and must not be modified.
func (c *Catalog) AllShapes() []Shape {
	out := make([]Shape, len(c.shapes))
	copy(out, c.shapes)
	return out
}

// RandomShape draws one variant uniformly. A rotation counts as its own
// entry, so families with more rotations come up more often.
func (c *Catalog) RandomShape(rng Rand) Shape {
	return c.shapes[rng.IntN(len(c.shapes))]
}

// Len returns the number of variants.
func (c *Catalog) Len() int { return len(c.shapes) }

// Families returns the family names in declaration order.
func (c *Catalog) Families() []string {
	out := make([]string, len(c.families))
	copy(out, c.families)
	return out
}

// Lookup finds a variant by name, e.g. "L/2".
func (c *Catalog) Lookup(name string) (Shape, bool) {
	for _, s := range c.shapes {
		if s.Name == name {
			return s, true
		}
	}
	return Shape{}, false
}
