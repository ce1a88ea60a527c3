package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/CloveTwilight3/doughmination-backend/internal/core/domain"
	"github.com/CloveTwilight3/doughmination-backend/internal/realtime"
)

// WSHandler upgrades HTTP requests to websocket subscriber connections.
type WSHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewWSHandler(hub *realtime.Hub, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The site frontend is served from other origins (dev server,
			// CDN); access control happens at the API layer, not here.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// Subscribe registers the connection in the "all" group and runs its serve
// loop until it drops.
func (h *WSHandler) Subscribe(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return nil
	}

	client := realtime.NewClient(realtime.NewWebsocketConn(ws), c.RealIP())
	h.hub.Connect(client, domain.GroupAll)

	if err := client.SendEvent(domain.NewEvent(domain.EventConnectionEstablished, nil)); err != nil {
		h.hub.Disconnect(client)
		return nil
	}

	h.log.Debug().Str("remote", c.RealIP()).Msg("websocket client connected")
	client.Serve(h.hub, realtime.DefaultIdleTimeout)
	return nil
}
