package config

import (
	"net/http"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader  websocket.Upgrader
	ReadLimit int64
}

func NewWebSocket() (*WebSocket, error) {
	readLimit, err := lookupInt("WS_READ_LIMIT", 4096)
	if err != nil {
		return nil, err
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	ws := &WebSocket{
		Upgrader:  upgrader,
		ReadLimit: int64(readLimit),
	}

	return ws, nil
}
