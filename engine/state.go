package engine

// State is the phase of a session.
type State int

const (
	// Empty is a freshly initialized board with nothing on it.
	Empty State = iota
	// Filling is set while the starting board is being seeded.
	Filling
	// Active is steady play.
	Active
	// Deadlock is held while the board is reset because no piece fits.
	Deadlock
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Filling:
		return "filling"
	case Active:
		return "active"
	case Deadlock:
		return "deadlock"
	default:
		return "unknown"
	}
}
