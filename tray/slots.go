package tray

const (
	slotBlockSize = 64
)

// slotStorage stores pieces in fixed-size blocks. Freed slots are reused and
// each reuse bumps the slot generation so old handles stop resolving.
type slotStorage struct {
	blocks      [][slotBlockSize]Piece
	filled      [][slotBlockSize]bool
	generations [][slotBlockSize]uint32
	freeSlots   []int
	nextIndex   int
}

// insert stores a piece and returns its index and generation.
func (s *slotStorage) insert(p Piece) (int, uint32) {
	var index int
	if len(s.freeSlots) > 0 {
		index = s.freeSlots[len(s.freeSlots)-1]
		s.freeSlots = s.freeSlots[:len(s.freeSlots)-1]
	} else {
		index = s.nextIndex
		s.nextIndex++

		if index/slotBlockSize >= len(s.blocks) {
			s.blocks = append(s.blocks, [slotBlockSize]Piece{})
			s.filled = append(s.filled, [slotBlockSize]bool{})
			s.generations = append(s.generations, [slotBlockSize]uint32{})
		}
	}

	blockIdx := index / slotBlockSize
	slotIdx := index % slotBlockSize

	s.generations[blockIdx][slotIdx]++
	if s.generations[blockIdx][slotIdx] == 0 {
		s.generations[blockIdx][slotIdx] = 1
	}
	s.blocks[blockIdx][slotIdx] = p
	s.filled[blockIdx][slotIdx] = true

	return index, s.generations[blockIdx][slotIdx]
}

// get returns a pointer to the piece at index if the generation matches.
func (s *slotStorage) get(index int, generation uint32) *Piece {
	if index < 0 || index >= s.nextIndex {
		return nil
	}

	blockIdx := index / slotBlockSize
	slotIdx := index % slotBlockSize

	if !s.filled[blockIdx][slotIdx] || s.generations[blockIdx][slotIdx] != generation {
		return nil
	}

	return &s.blocks[blockIdx][slotIdx]
}

// erase marks a slot as empty.
func (s *slotStorage) erase(index int) {
	if index < 0 || index >= s.nextIndex {
		return
	}

	blockIdx := index / slotBlockSize
	slotIdx := index % slotBlockSize

	if s.filled[blockIdx][slotIdx] {
		s.filled[blockIdx][slotIdx] = false
		s.blocks[blockIdx][slotIdx] = Piece{}
		s.freeSlots = append(s.freeSlots, index)
	}
}
