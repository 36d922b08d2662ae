package mines

import "strconv"

// Cell is the static classification of a board position: either a mine or
// the number of mines among its in-bounds neighbours.
type Cell int8

const Mine Cell = -1

// Count returns the safe cell with k mined neighbours.
func Count(k int) Cell {
	return Cell(k)
}

func (c Cell) IsMine() bool {
	return c == Mine
}

// Count returns the neighbour count of a safe cell; ok is false for mines.
func (c Cell) Count() (k int, ok bool) {
	if c == Mine {
		return 0, false
	}
	return int(c), true
}

// Cell implements [fmt.Stringer]
func (c Cell) String() string {
	if c == Mine {
		return "*"
	}
	return strconv.Itoa(int(c))
}
