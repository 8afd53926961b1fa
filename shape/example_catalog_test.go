package shape_test

import (
	"fmt"

	"github.com/plus3/blockblast/shape"
)

// ExampleCatalog lists the rotations of one family. Each rotation is its own
// entry in the catalog.
func ExampleCatalog() {
	c := shape.NewCatalog()

	for _, s := range c.AllShapes() {
		if s.Family == "Line3" {
			fmt.Println(s.Name, s)
		}
	}

	// Output:
	// Line3/0 (0,0),(0,1),(0,2)
	// Line3/1 (0,0),(1,0),(2,0)
}
