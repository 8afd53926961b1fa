package engine_test

import (
	"fmt"
	"math/rand/v2"

	"github.com/plus3/blockblast/engine"
	"github.com/plus3/blockblast/shape"
)

func ExampleEngine_CommitPlacement() {
	opts := engine.DefaultOptions()
	opts.Width, opts.Height = 4, 4
	opts.AutoRefill = false
	opts.LowWater = 0
	opts.Rand = rand.New(rand.NewPCG(1, 1))

	e, err := engine.New(opts)
	if err != nil {
		panic(err)
	}

	line, _ := shape.Default().Lookup("Line3/1")
	mono, _ := shape.Default().Lookup("Mono/0")
	spare := e.AddPiece(mono, 0)

	p := e.CommitPlacement(e.AddPiece(line, 2), shape.Cell{X: 0, Y: 3})
	fmt.Println("accepted:", p.Accepted, "cleared rows:", p.Cleared.Rows)

	p = e.CommitPlacement(e.AddPiece(line, 2), shape.Cell{X: 2, Y: 3})
	fmt.Println("accepted:", p.Accepted, "reason:", p.Reason)

	p = e.CommitPlacement(spare, shape.Cell{X: 3, Y: 3})
	fmt.Println("accepted:", p.Accepted, "cleared rows:", p.Cleared.Rows)
	fmt.Println("occupied:", e.Board().Count())

	// Output:
	// accepted: true cleared rows: []
	// accepted: false reason: cell occupied
	// accepted: true cleared rows: [3]
	// occupied: 0
}
