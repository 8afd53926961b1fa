package fx

// Rand is the random source effects draw from. *math/rand/v2.Rand satisfies
// it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Vec is a position in board cell units.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }

// Lerp interpolates linearly between a and b.
func Lerp(a, b Vec, t float64) Vec { return a.Add(b.Sub(a).Scale(t)) }

func symmetric(rng Rand) float64 { return rng.Float64()*2 - 1 }

func clamp01(t float64) float64 { return min(1, max(0, t)) }

const (
	ShakeDuration  = 0.2
	ShakeMagnitude = 0.1
	ReturnDuration = 0.333
)

// Shake jitters Target by up to Magnitude on each axis for Duration
// seconds and then restores it to the zero offset.
type Shake struct {
	Target    *Vec
	Duration  float64
	Magnitude float64
	Rand      Rand

	elapsed float64
}

// NewShake builds the shake used when lines clear.
func NewShake(target *Vec, rng Rand) *Shake {
	return &Shake{
		Target:    target,
		Duration:  ShakeDuration,
		Magnitude: ShakeMagnitude,
		Rand:      rng,
	}
}

func (s *Shake) Update(frame *Frame) bool {
	if s.elapsed >= s.Duration {
		*s.Target = Vec{}
		return true
	}

	*s.Target = Vec{
		X: symmetric(s.Rand) * s.Magnitude,
		Y: symmetric(s.Rand) * s.Magnitude,
	}
	s.elapsed += frame.DeltaTime
	return false
}

// Tween moves Target from From to To over Duration seconds and snaps it to
// To at the end. Done, if set, runs at the end of the tick that finished
// the tween.
type Tween struct {
	Target   *Vec
	From, To Vec
	Duration float64
	Done     func()

	elapsed float64
}

// NewReturn slides a rejected piece from where it was dropped back to its
// tray slot.
func NewReturn(target *Vec, home Vec, done func()) *Tween {
	return &Tween{
		Target:   target,
		From:     *target,
		To:       home,
		Duration: ReturnDuration,
		Done:     done,
	}
}

// Progress returns how far the tween has run, from 0 to 1.
func (t *Tween) Progress() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return clamp01(t.elapsed / t.Duration)
}

func (t *Tween) Update(frame *Frame) bool {
	t.elapsed += frame.DeltaTime
	if t.elapsed < t.Duration {
		*t.Target = Lerp(t.From, t.To, t.Progress())
		return false
	}

	*t.Target = t.To
	if t.Done != nil {
		frame.Commands.Defer(t.Done)
	}
	return true
}
