package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/campo-minato/internal/config"
	"github.com/vancomm/campo-minato/internal/middleware"
	"github.com/vancomm/campo-minato/internal/mines"
	"github.com/vancomm/campo-minato/internal/store"
)

type App struct {
	logger   *slog.Logger
	game     *config.Game
	sessions *config.Sessions
	jwt      *config.JWT
	ws       *config.WebSocket
	store    *store.Store
	rnd      *rand.Rand
}

// Option overrides a part of the environment derived setup.
type Option func(*App)

func WithJWT(j *config.JWT) Option {
	return func(a *App) { a.jwt = j }
}

func WithGame(game *config.Game) Option {
	return func(a *App) { a.game = game }
}

func WithRand(r *rand.Rand) Option {
	return func(a *App) { a.rnd = r }
}

// New reads configuration from the environment; opts replace individual
// parts of it.
func New(logger *slog.Logger, opts ...Option) (*App, error) {
	a := &App{logger: logger}
	for _, opt := range opts {
		opt(a)
	}

	var err error
	if a.game == nil {
		if a.game, err = config.NewGame(); err != nil {
			return nil, fmt.Errorf("unable to read game config: %w", err)
		}
	}
	if a.sessions, err = config.NewSessions(); err != nil {
		return nil, fmt.Errorf("unable to read sessions config: %w", err)
	}
	if a.jwt == nil {
		if a.jwt, err = config.NewJWT(); err != nil {
			return nil, fmt.Errorf("unable to read jwt config: %w", err)
		}
	}
	if a.ws, err = config.NewWebSocket(); err != nil {
		return nil, fmt.Errorf("unable to read ws config: %w", err)
	}
	if a.rnd == nil {
		a.rnd = mines.NewRand()
	}

	a.store = store.New(a.sessions.Limit, a.sessions.IdleTimeout)

	return a, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.Router(),
		middleware.Logging(a.logger),
		middleware.Cors(),
		middleware.Auth(a.logger, a.jwt),
	)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Start(ctx context.Context) error {
	port := config.Port()
	server := &http.Server{
		Addr:         port,
		Handler:      a.Handler(),
		ReadTimeout:  time.Second * 15,
		WriteTimeout: time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		return a.store.RunJanitor(gCtx, a.logger, a.sessions.SweepEvery)
	})

	a.logger.Info("campo minato listening",
		slog.String("port", port),
		slog.String("base path", config.BasePath()),
		slog.Int("grid size", a.game.GridSize),
		slog.Int("tile size", a.game.TileSize),
		slog.Float64("mine probability", a.game.MineProbability),
	)

	return g.Wait()
}
