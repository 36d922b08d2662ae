package mines

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// Session owns one game: the board, what the player has revealed and which
// mines went off. A Session is not safe for concurrent use.
type Session struct {
	board     *Board
	engine    *Engine
	detonated *DetonationState
}

// NewSession generates and annotates a fresh board. A nil r uses a
// non-deterministic source.
func NewSession(size int, mineProbability float64, r *rand.Rand) (*Session, error) {
	layout, err := Generate(size, mineProbability, r)
	if err != nil {
		return nil, err
	}
	return NewSessionFromLayout(size, layout)
}

// NewSessionFromLayout builds a session over a fixed row-major mine layout.
func NewSessionFromLayout(size int, layout []bool) (*Session, error) {
	board, err := Annotate(size, layout)
	if err != nil {
		return nil, err
	}
	return &Session{
		board:     board,
		engine:    NewEngine(board),
		detonated: newDetonationState(size),
	}, nil
}

func (s *Session) Board() *Board {
	return s.board
}

func (s *Session) Revealed() *RevealState {
	return s.engine.state
}

func (s *Session) Detonated() *DetonationState {
	return s.detonated
}

func (s *Session) Size() int {
	return s.board.size
}

type Outcome int8

const (
	Unchanged Outcome = iota
	Revealed
	Detonated
)

var outcomeNames = [...]string{
	Unchanged: "unchanged",
	Revealed:  "revealed",
	Detonated: "detonated",
}

// Outcome implements [fmt.Stringer]
func (o Outcome) String() string {
	if 0 <= int(o) && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", o)
}

// Outcome implements [encoding.TextMarshaler]
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Click describes what a single click did.
type Click struct {
	X, Y     int
	Outcome  Outcome
	Revealed int // cells newly revealed
}

// HandleInput maps a pointer position in pixels to a grid cell using square
// tiles of tileSize pixels and clicks it. Positions outside the grid fail
// with [ErrOutOfBounds]; they are never clamped.
func (s *Session) HandleInput(px, py float64, tileSize int) (Click, error) {
	if tileSize <= 0 {
		return Click{}, fmt.Errorf("%w: tile size %d", ErrInvalidConfiguration, tileSize)
	}
	fx := math.Floor(px / float64(tileSize))
	fy := math.Floor(py / float64(tileSize))
	n := float64(s.board.size)
	// also rejects NaN
	if !(0 <= fx && fx < n && 0 <= fy && fy < n) {
		return Click{}, fmt.Errorf(
			"%w: pixel (%v, %v) outside %d×%d grid of %dpx tiles",
			ErrOutOfBounds, px, py, s.board.size, s.board.size, tileSize,
		)
	}
	return s.Click(int(fx), int(fy))
}

// Click acts on the cell at (x, y): mines detonate, zero cells flood fill
// and numbered cells are revealed on their own.
func (s *Session) Click(x, y int) (Click, error) {
	if err := s.board.checkBounds(x, y); err != nil {
		return Click{}, err
	}

	click := Click{X: x, Y: y}
	i := y*s.board.size + x

	switch c := s.board.cells[i]; {
	case c == Mine:
		click.Outcome = Detonated
		if s.detonated.detonate(i) {
			Log.WithFields(logrus.Fields{"x": x, "y": y}).Info("mine detonated")
		}
		return click, nil
	case c == 0:
		n, err := s.engine.RevealCell(x, y)
		if err != nil {
			return Click{}, err
		}
		click.Revealed = n
	default:
		if s.engine.state.mark(i) {
			click.Revealed = 1
		}
	}

	if click.Revealed > 0 {
		click.Outcome = Revealed
	}
	return click, nil
}
