package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellState is what the player sees of a cell.
type CellState int8

const (
	Unknown      CellState = -2
	ExplodedMine CellState = 65
	// 0 to 8 mean the cell is revealed and has that many mined neighbours
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return " "
	case s == ExplodedMine:
		return "X"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			fmt.Fprint(&b, g[y*width+x].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// View returns the player's view of the board, row-major.
func (s *Session) View() Grid {
	grid := make(Grid, len(s.board.cells))
	for i, c := range s.board.cells {
		switch {
		case s.detonated.detonated[i]:
			grid[i] = ExplodedMine
		case s.engine.state.revealed[i]:
			grid[i] = CellState(c)
		default:
			grid[i] = Unknown
		}
	}
	return grid
}
