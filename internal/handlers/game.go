package handlers

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/vancomm/campo-minato/internal/config"
	"github.com/vancomm/campo-minato/internal/middleware"
	"github.com/vancomm/campo-minato/internal/mines"
	"github.com/vancomm/campo-minato/internal/store"
)

// SessionStore holds live sessions; With must serialise access to one
// session.
type SessionStore interface {
	Create(*mines.Session) (string, error)
	With(id string, fn func(*mines.Session) error) error
	Delete(id string) error
}

var (
	errUnauthorized = errors.New("missing or invalid session token")
	errForbidden    = errors.New("token does not grant access to this session")
)

type GameHandler struct {
	logger *slog.Logger
	store  SessionStore
	jwt    *config.JWT
	ws     *config.WebSocket
	game   config.Game

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	sessions SessionStore,
	jwt *config.JWT,
	ws *config.WebSocket,
	game config.Game,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		logger: logger,
		store:  sessions,
		jwt:    jwt,
		ws:     ws,
		game:   game,
		rnd:    rnd,
	}
}

func (g *GameHandler) newSession() (*mines.Session, error) {
	g.rndMu.Lock()
	defer g.rndMu.Unlock()
	return mines.NewSession(g.game.GridSize, g.game.MineProbability, g.rnd)
}

func (g *GameHandler) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, errForbidden):
		status = http.StatusForbidden
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrFull):
		status = http.StatusServiceUnavailable
	case errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrInvalidConfiguration):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		g.logger.Error("request failed", slog.Any("error", err))
		sendJSONOrLog(w, g.logger, status, wrapError(errors.New("internal error")))
		return
	}
	sendJSONOrLog(w, g.logger, status, wrapError(err))
}

// authorize returns the session id from the path if the request carries a
// token for it.
func (g *GameHandler) authorize(r *http.Request) (string, error) {
	id := mux.Vars(r)["id"]
	claims, ok := middleware.SessionClaims(r.Context())
	if !ok {
		return "", errUnauthorized
	}
	if claims.SessionID != id {
		return "", errForbidden
	}
	return id, nil
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	session, err := g.newSession()
	if err != nil {
		g.fail(w, err)
		return
	}

	id, err := g.store.Create(session)
	if err != nil {
		g.fail(w, err)
		return
	}

	token, err := g.jwt.Sign(id)
	if err != nil {
		g.store.Delete(id)
		g.fail(w, err)
		return
	}

	var dto *GameSessionDTO
	err = g.store.With(id, func(s *mines.Session) error {
		dto = NewGameSessionDTO(id, g.game.TileSize, s)
		return nil
	})
	if err != nil {
		g.fail(w, err)
		return
	}
	dto.Token = token

	g.logger.Debug("created session",
		slog.String("id", id),
		slog.Int("size", session.Size()),
		slog.Int("mines", session.Board().MineCount()),
	)

	sendJSONOrLog(w, g.logger, http.StatusCreated, dto)
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, err := g.authorize(r)
	if err != nil {
		g.fail(w, err)
		return
	}

	var dto *GameSessionDTO
	err = g.store.With(id, func(s *mines.Session) error {
		dto = NewGameSessionDTO(id, g.game.TileSize, s)
		return nil
	})
	if err != nil {
		g.fail(w, err)
		return
	}

	sendJSONOrLog(w, g.logger, http.StatusOK, dto)
}

// Click handles a pointer click given in pixels.
func (g *GameHandler) Click(w http.ResponseWriter, r *http.Request) {
	id, err := g.authorize(r)
	if err != nil {
		g.fail(w, err)
		return
	}

	pos, err := ParseClickDTO(r.URL.Query())
	if err != nil {
		sendJSONOrLog(w, g.logger, http.StatusBadRequest, wrapError(err))
		return
	}

	g.move(w, id, func(s *mines.Session) (mines.Click, error) {
		return s.HandleInput(pos.PX, pos.PY, g.game.TileSize)
	})
}

// Open handles a click given in grid coordinates.
func (g *GameHandler) Open(w http.ResponseWriter, r *http.Request) {
	id, err := g.authorize(r)
	if err != nil {
		g.fail(w, err)
		return
	}

	pos, err := ParsePositionDTO(r.URL.Query())
	if err != nil {
		sendJSONOrLog(w, g.logger, http.StatusBadRequest, wrapError(err))
		return
	}

	g.move(w, id, func(s *mines.Session) (mines.Click, error) {
		return s.Click(pos.X, pos.Y)
	})
}

func (g *GameHandler) move(
	w http.ResponseWriter, id string, click func(*mines.Session) (mines.Click, error),
) {
	var dto *GameSessionDTO
	err := g.store.With(id, func(s *mines.Session) error {
		c, err := click(s)
		if err != nil {
			return err
		}
		dto = NewGameSessionDTO(id, g.game.TileSize, s).withClick(&c)
		return nil
	})
	if err != nil {
		g.fail(w, err)
		return
	}

	sendJSONOrLog(w, g.logger, http.StatusOK, dto)
}

// End discards the session.
func (g *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	id, err := g.authorize(r)
	if err != nil {
		g.fail(w, err)
		return
	}

	if err := g.store.Delete(id); err != nil {
		g.fail(w, err)
		return
	}

	g.logger.Debug("ended session", slog.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}
