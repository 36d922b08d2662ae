package mines

import (
	"fmt"
	"hash/maphash"
	"math"
	"math/rand/v2"
)

// DefaultMineProbability places a mine on roughly one cell in eleven.
const DefaultMineProbability = 1.0 / 11

// NewRand returns a non-deterministically seeded source.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func validateParams(size int, mineProbability float64) error {
	if size <= 0 {
		return fmt.Errorf("%w: grid size %d", ErrInvalidConfiguration, size)
	}
	if math.IsNaN(mineProbability) || mineProbability < 0 || mineProbability > 1 {
		return fmt.Errorf(
			"%w: mine probability %v not in [0, 1]",
			ErrInvalidConfiguration, mineProbability,
		)
	}
	return nil
}

// Generate returns a size×size mine layout, row-major, where every position
// holds a mine independently with probability mineProbability. Boards
// without mines or without safe cells are valid results.
func Generate(size int, mineProbability float64, r *rand.Rand) ([]bool, error) {
	if err := validateParams(size, mineProbability); err != nil {
		return nil, err
	}
	if r == nil {
		r = NewRand()
	}
	layout := make([]bool, size*size)
	for i := range layout {
		layout[i] = r.Float64() < mineProbability
	}
	return layout, nil
}

// Annotate turns a row-major mine layout into a [Board], giving every safe
// cell the number of mines among its in-bounds neighbours.
func Annotate(size int, layout []bool) (*Board, error) {
	if size <= 0 || len(layout) != size*size {
		return nil, fmt.Errorf(
			"%w: layout of %d cells for grid size %d",
			ErrInvalidConfiguration, len(layout), size,
		)
	}
	b := &Board{
		size:  size,
		cells: make([]Cell, len(layout)),
	}
	for y := range size {
		for x := range size {
			i := y*size + x
			if layout[i] {
				b.cells[i] = Mine
				continue
			}
			k := 0
			b.forEachNeighbour(x, y, func(nx, ny int) {
				if layout[ny*size+nx] {
					k++
				}
			})
			b.cells[i] = Count(k)
		}
	}
	return b, nil
}
