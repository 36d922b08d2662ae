package mines

import "github.com/sirupsen/logrus"

// RevealState records which cells the player can see. Cells only ever go
// from hidden to revealed.
type RevealState struct {
	size     int
	revealed []bool
	count    int
}

func newRevealState(size int) *RevealState {
	return &RevealState{
		size:     size,
		revealed: make([]bool, size*size),
	}
}

func (s *RevealState) IsRevealed(x, y int) (bool, error) {
	if x < 0 || x >= s.size || y < 0 || y >= s.size {
		return false, outOfBounds(x, y, s.size)
	}
	return s.revealed[y*s.size+x], nil
}

// Count returns the number of revealed cells.
func (s *RevealState) Count() int {
	return s.count
}

// mark reveals cell i and reports whether it was hidden before.
func (s *RevealState) mark(i int) bool {
	if s.revealed[i] {
		return false
	}
	s.revealed[i] = true
	s.count++
	return true
}

// Engine performs reveals against an immutable board. It is the only
// writer of its [RevealState].
type Engine struct {
	board *Board
	state *RevealState
}

func NewEngine(board *Board) *Engine {
	return &Engine{
		board: board,
		state: newRevealState(board.size),
	}
}

func (e *Engine) State() *RevealState {
	return e.state
}

// RevealCell reveals the cell at (x, y) and returns how many cells became
// visible. Mines and revealed cells are left alone; zero cells flood fill.
func (e *Engine) RevealCell(x, y int) (int, error) {
	if err := e.board.checkBounds(x, y); err != nil {
		return 0, err
	}
	i := y*e.board.size + x
	if e.state.revealed[i] {
		return 0, nil
	}
	switch c := e.board.cells[i]; {
	case c == Mine:
		return 0, nil
	case c == 0:
		return e.floodFill(x, y), nil
	default:
		e.state.mark(i)
		return 1, nil
	}
}

// FloodFill reveals the zero region containing (x, y) together with its
// numbered border. It does nothing unless (x, y) is a hidden zero cell.
func (e *Engine) FloodFill(x, y int) (int, error) {
	if err := e.board.checkBounds(x, y); err != nil {
		return 0, err
	}
	return e.floodFill(x, y), nil
}

type point struct{ x, y int }

func (e *Engine) floodFill(x, y int) int {
	n := e.board.size
	if e.board.cells[y*n+x] != 0 || e.state.revealed[y*n+x] {
		return 0
	}

	// FIFO work list; a position may be queued twice before it is marked.
	queue := []point{{x, y}}
	revealed := 0
	for head := 0; head < len(queue); head++ {
		p := queue[head]
		i := p.y*n + p.x
		if !e.state.mark(i) {
			continue
		}
		revealed++
		if e.board.cells[i] != 0 {
			continue
		}
		e.board.forEachNeighbour(p.x, p.y, func(nx, ny int) {
			j := ny*n + nx
			if !e.state.revealed[j] && e.board.cells[j] != Mine {
				queue = append(queue, point{nx, ny})
			}
		})
	}

	Log.WithFields(logrus.Fields{
		"x": x, "y": y, "revealed": revealed, "queued": len(queue),
	}).Debug("flood fill")

	return revealed
}
