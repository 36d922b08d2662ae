package mines

import "strings"

// offsets of the Moore neighbourhood
var neighbours = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Board is an annotated N×N grid. It never changes after [Annotate].
type Board struct {
	size  int
	cells []Cell
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.size && 0 <= y && y < b.size
}

func (b *Board) checkBounds(x, y int) error {
	if !b.InBounds(x, y) {
		return outOfBounds(x, y, b.size)
	}
	return nil
}

// Get returns the cell at column x, row y.
func (b *Board) Get(x, y int) (Cell, error) {
	if err := b.checkBounds(x, y); err != nil {
		return 0, err
	}
	return b.cells[y*b.size+x], nil
}

func (b *Board) MineCount() int {
	n := 0
	for _, c := range b.cells {
		if c == Mine {
			n++
		}
	}
	return n
}

// forEachNeighbour calls f for every in-bounds neighbour of (x, y).
func (b *Board) forEachNeighbour(x, y int, f func(nx, ny int)) {
	for _, d := range neighbours {
		nx, ny := x+d[0], y+d[1]
		if b.InBounds(nx, ny) {
			f(nx, ny)
		}
	}
}

// Board implements [fmt.Stringer]
func (b *Board) String() string {
	var s strings.Builder
	for y := range b.size {
		for x := range b.size {
			if x > 0 {
				s.WriteByte(' ')
			}
			s.WriteString(b.cells[y*b.size+x].String())
		}
		s.WriteByte('\n')
	}
	return s.String()
}
