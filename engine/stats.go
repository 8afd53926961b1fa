package engine

// Stats counts what happened in a session since it was created.
type Stats struct {
	Placements   int
	Rejections   int
	Lines        int
	CellsCleared int
	Deadlocks    int
	Batches      int
	Seeds        int
}

// AcceptRate is the share of commits that were accepted.
func (s Stats) AcceptRate() float64 {
	total := s.Placements + s.Rejections
	if total == 0 {
		return 0
	}
	return float64(s.Placements) / float64(total)
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Placements += o.Placements
	s.Rejections += o.Rejections
	s.Lines += o.Lines
	s.CellsCleared += o.CellsCleared
	s.Deadlocks += o.Deadlocks
	s.Batches += o.Batches
	s.Seeds += o.Seeds
}
