package ws

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds how long a single write may take.
	writeWait = 10 * time.Second

	// pongWait is how long the connection may stay silent before the read
	// side gives up. Pings go out at pingPeriod, which must be shorter.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client is one authenticated websocket session. The username comes from
// the verified token at upgrade time, never from the wire.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	logger   *slog.Logger
	username string
	send     chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn, logger *slog.Logger, username string, sendBuffer int) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		logger:   logger,
		username: username,
		send:     make(chan []byte, sendBuffer),
	}
}

// readPump reads frames off the connection and feeds them to the hub. It
// owns the read side and the connection's deadline bookkeeping.
func (c *Client) readPump() {
	defer func() {
		c.disconnect()
		c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn("Websocket read failed",
					slog.String("username", c.username),
					slog.String("error", err.Error()),
				)
			}

			return
		}

		var frame Envelope
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.logger.Warn("Dropping unparseable frame",
				slog.String("username", c.username),
				slog.String("error", err.Error()),
			)

			continue
		}

		select {
		case c.hub.inbound <- inbound{sender: c, frame: frame}:
		case <-c.hub.ctx.Done():
			return
		}
	}
}

// writePump drains the send channel onto the connection and keeps the
// connection alive with periodic pings. A closed send channel means the
// hub dropped this client.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})

				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) disconnect() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.ctx.Done():
	}
}
