package config

import (
	"fmt"

	"github.com/vancomm/campo-minato/internal/mines"
)

// Game holds the parameters every new session is created with.
type Game struct {
	GridSize        int
	MineProbability float64
	TileSize        int // pixels per cell side
}

func NewGame() (*Game, error) {
	gridSize, err := lookupInt("GRID_SIZE", 20)
	if err != nil {
		return nil, err
	}
	mineProbability, err := lookupFloat("MINE_PROBABILITY", mines.DefaultMineProbability)
	if err != nil {
		return nil, err
	}
	tileSize, err := lookupInt("TILE_SIZE", 40)
	if err != nil {
		return nil, err
	}

	game := &Game{
		GridSize:        gridSize,
		MineProbability: mineProbability,
		TileSize:        tileSize,
	}
	if err := game.Validate(); err != nil {
		return nil, err
	}
	return game, nil
}

func (g Game) Validate() error {
	if g.GridSize <= 0 {
		return fmt.Errorf("%w: GRID_SIZE must be positive, got %d",
			mines.ErrInvalidConfiguration, g.GridSize)
	}
	if !(0 <= g.MineProbability && g.MineProbability <= 1) {
		return fmt.Errorf("%w: MINE_PROBABILITY must be in [0, 1], got %v",
			mines.ErrInvalidConfiguration, g.MineProbability)
	}
	if g.TileSize <= 0 {
		return fmt.Errorf("%w: TILE_SIZE must be positive, got %d",
			mines.ErrInvalidConfiguration, g.TileSize)
	}
	return nil
}

// WindowSize is the side of the playing area in pixels.
func (g Game) WindowSize() int {
	return g.GridSize * g.TileSize
}
