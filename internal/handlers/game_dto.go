package handlers

import (
	"github.com/gorilla/schema"

	"github.com/vancomm/campo-minato/internal/mines"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

// ClickDTO is a pointer position in pixels.
type ClickDTO struct {
	PX float64 `schema:"px,required"`
	PY float64 `schema:"py,required"`
}

func ParseClickDTO(src map[string][]string) (ClickDTO, error) {
	var dto ClickDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// PositionDTO is a grid position.
type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePositionDTO(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type ClickResultDTO struct {
	X        int           `json:"x"`
	Y        int           `json:"y"`
	Outcome  mines.Outcome `json:"outcome"`
	Revealed int           `json:"revealed"`
}

type GameSessionDTO struct {
	GameSessionID string          `json:"game_session_id"`
	Token         string          `json:"token,omitempty"`
	Size          int             `json:"size"`
	TileSize      int             `json:"tile_size"`
	Grid          mines.Grid      `json:"grid"`
	Revealed      int             `json:"revealed"`
	Detonated     int             `json:"detonated"`
	LastClick     *ClickResultDTO `json:"last_click,omitempty"`
}

func NewGameSessionDTO(id string, tileSize int, s *mines.Session) *GameSessionDTO {
	return &GameSessionDTO{
		GameSessionID: id,
		Size:          s.Size(),
		TileSize:      tileSize,
		Grid:          s.View(),
		Revealed:      s.Revealed().Count(),
		Detonated:     s.Detonated().Count(),
	}
}

func (dto *GameSessionDTO) withClick(c *mines.Click) *GameSessionDTO {
	if c != nil {
		dto.LastClick = &ClickResultDTO{
			X:        c.X,
			Y:        c.Y,
			Outcome:  c.Outcome,
			Revealed: c.Revealed,
		}
	}
	return dto
}
