package fx

import (
	"image/color"

	"github.com/plus3/blockblast/board"
)

// BurstLifetime is how long a line burst stays on screen, in seconds.
const BurstLifetime = 1.0

// Palettes are the colour pairs a burst picks from. Each particle gets a
// colour between the two.
var Palettes = [][2]color.RGBA{
	{{0, 0, 255, 255}, {0, 255, 255, 255}},
	{{255, 0, 0, 255}, {255, 235, 4, 255}},
	{{0, 255, 0, 255}, {0, 255, 255, 255}},
}

// Particle is one spark of a burst.
type Particle struct {
	Pos   Vec
	Vel   Vec
	Color color.RGBA
}

// Burst is the particle explosion over a cleared line.
type Burst struct {
	Line      board.Line
	Origin    Vec
	Lifetime  float64
	Particles []Particle

	elapsed float64
}

// NewBurst spreads particles along line on a width×height board. Column
// bursts are the row burst turned by 90 degrees.
func NewBurst(line board.Line, width, height int, rng Rand) *Burst {
	cx, cy := line.Centroid(width, height)
	b := &Burst{
		Line:     line,
		Origin:   Vec{cx, cy},
		Lifetime: BurstLifetime,
	}

	length := width
	if line.Axis == board.Column {
		length = height
	}

	pair := Palettes[rng.IntN(len(Palettes))]
	for range length * 4 {
		along := symmetric(rng) * float64(length) / 2
		across := symmetric(rng) * 0.25
		vel := Vec{symmetric(rng) * 0.5, symmetric(rng) * 3}

		p := Particle{
			Pos:   b.Origin.Add(Vec{along, across}),
			Vel:   vel,
			Color: mix(pair[0], pair[1], rng.Float64()),
		}
		if line.Axis == board.Column {
			p.Pos = b.Origin.Add(Vec{across, along})
			p.Vel = Vec{vel.Y, vel.X}
		}
		b.Particles = append(b.Particles, p)
	}

	return b
}

// Alpha fades from 1 to 0 over the lifetime.
func (b *Burst) Alpha() float64 {
	return 1 - clamp01(b.elapsed/b.Lifetime)
}

func (b *Burst) Update(frame *Frame) bool {
	b.elapsed += frame.DeltaTime
	for i := range b.Particles {
		p := &b.Particles[i]
		p.Pos = p.Pos.Add(p.Vel.Scale(frame.DeltaTime))
		p.Vel = p.Vel.Scale(0.96)
	}
	return b.elapsed >= b.Lifetime
}

func mix(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), lerp(a.A, b.A)}
}
