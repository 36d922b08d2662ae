package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/campo-minato/internal/mines"
	"github.com/vancomm/campo-minato/internal/store"
)

type wsCommand string

const (
	wsNoop  wsCommand = "g"
	wsClick wsCommand = "c" // pixels
	wsOpen  wsCommand = "o" // grid cell
)

// execute runs one command line against s. A nil click means the command
// did not touch the board.
func (g *GameHandler) execute(s *mines.Session, line string) (*mines.Click, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, nil
	}
	cmd, args := wsCommand(tokens[0]), tokens[1:]
	switch cmd {
	case wsNoop:
		return nil, nil
	case wsClick:
		px, py, err := parsePixels(args)
		if err != nil {
			return nil, err
		}
		click, err := s.HandleInput(px, py, g.game.TileSize)
		if err != nil {
			return nil, err
		}
		return &click, nil
	case wsOpen:
		x, y, err := parseXY(args)
		if err != nil {
			return nil, err
		}
		click, err := s.Click(x, y)
		if err != nil {
			return nil, err
		}
		return &click, nil
	default:
		return nil, fmt.Errorf("unknown command %q", cmd)
	}
}

func (g *GameHandler) wsRunGameLoop(conn *websocket.Conn, id string) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		var reply any
		err = g.store.With(id, func(s *mines.Session) error {
			var last *mines.Click
			for _, line := range strings.Split(strings.TrimSpace(string(buf)), "\n") {
				click, err := g.execute(s, line)
				if err != nil {
					return err
				}
				if click != nil {
					last = click
				}
			}
			reply = NewGameSessionDTO(id, g.game.TileSize, s).withClick(last)
			return nil
		})
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		if err != nil {
			reply = wrapError(err)
		}

		if err := conn.WriteJSON(reply); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}

// ConnectWS upgrades to a WebSocket that accepts newline separated
// commands and answers each message with the session view.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id, err := g.authorize(r)
	if err != nil {
		g.fail(w, err)
		return
	}

	err = g.store.With(id, func(*mines.Session) error { return nil })
	if err != nil {
		g.fail(w, err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(g.ws.ReadLimit)

	g.logger.Debug("established WS connection", slog.String("id", id))

	err = g.wsRunGameLoop(conn, id)
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return
	}
	if err != nil {
		g.logger.Warn("error in ws loop", slog.String("id", id), slog.Any("error", err))
	}
}

func parseXY(args []string) (x int, y int, err error) {
	if len(args) != 2 {
		err = fmt.Errorf("expected 2 arguments, got %d", len(args))
		return
	}
	if x, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

func parsePixels(args []string) (px float64, py float64, err error) {
	if len(args) != 2 {
		err = fmt.Errorf("expected 2 arguments, got %d", len(args))
		return
	}
	if px, err = strconv.ParseFloat(args[0], 64); err != nil {
		err = fmt.Errorf("first argument must be a number")
		return
	}
	if py, err = strconv.ParseFloat(args[1], 64); err != nil {
		err = fmt.Errorf("second argument must be a number")
		return
	}
	return
}
