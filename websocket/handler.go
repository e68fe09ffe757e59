package websocket

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades the connection and subscribes it to the engagement
// feed. Inbound messages are ignored; the socket is a one-way event stream.
func HandleWebSocket(c echo.Context, hub *Hub) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		ID:   uuid.NewString(),
		Conn: conn,
		send: make(chan Event, 16),
	}

	hub.register <- client

	conn.WriteJSON(Event{Type: "connected"})

	// Writer: drains the client's event queue until the hub closes it.
	go func() {
		for event := range client.send {
			if err := conn.WriteJSON(event); err != nil {
				break
			}
		}
		conn.Close()
	}()

	// Reader: only used to detect disconnection.
	go func() {
		defer func() {
			hub.unregister <- client
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()

	return nil
}
