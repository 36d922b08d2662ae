package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vancomm/campo-minato/internal/config"
	"github.com/vancomm/campo-minato/internal/handlers"
)

func (a *App) Router() *mux.Router {
	router := mux.NewRouter()
	base := router
	if prefix := config.BasePath(); prefix != "" {
		base = router.PathPrefix(prefix).Subrouter()
	}

	game := handlers.NewGameHandler(
		a.logger, a.store, a.jwt, a.ws, *a.game, a.rnd,
	)

	base.Methods(http.MethodPost).Path("/game").HandlerFunc(game.NewGame)
	base.Methods(http.MethodGet).Path("/game/{id}").HandlerFunc(game.Fetch)
	base.Methods(http.MethodDelete).Path("/game/{id}").HandlerFunc(game.End)
	base.Methods(http.MethodPost).Path("/game/{id}/click").HandlerFunc(game.Click)
	base.Methods(http.MethodPost).Path("/game/{id}/open").HandlerFunc(game.Open)
	base.Methods(http.MethodGet).Path("/game/{id}/connect").HandlerFunc(game.ConnectWS)

	base.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return router
}
