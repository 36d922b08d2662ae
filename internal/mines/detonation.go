package mines

// DetonationState records which mines have been clicked. It is separate
// from [RevealState]: a detonated mine is never revealed.
type DetonationState struct {
	size      int
	detonated []bool
	count     int
}

func newDetonationState(size int) *DetonationState {
	return &DetonationState{
		size:      size,
		detonated: make([]bool, size*size),
	}
}

func (s *DetonationState) IsDetonated(x, y int) (bool, error) {
	if x < 0 || x >= s.size || y < 0 || y >= s.size {
		return false, outOfBounds(x, y, s.size)
	}
	return s.detonated[y*s.size+x], nil
}

func (s *DetonationState) Count() int {
	return s.count
}

func (s *DetonationState) detonate(i int) bool {
	if s.detonated[i] {
		return false
	}
	s.detonated[i] = true
	s.count++
	return true
}
