package spectate

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/noseas/internal/games/noseas"
)

// WebSocket settings
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Format selects the frame encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat maps a query value to a Format. Empty means JSON.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, true
	case FormatMsgpack:
		return FormatMsgpack, true
	default:
		return "", false
	}
}

// Encode serializes a snapshot and returns the WebSocket message type to
// send it with.
func (f Format) Encode(snap noseas.Snapshot) (int, []byte, error) {
	if f == FormatMsgpack {
		data, err := msgpack.Marshal(&snap)
		return websocket.BinaryMessage, data, err
	}
	data, err := json.Marshal(snap)
	return websocket.TextMessage, data, err
}

// client is one connected viewer.
type client struct {
	id     string
	conn   *websocket.Conn
	hub    *Hub
	frames <-chan noseas.Snapshot
	format Format
	logger *log.Logger
}

// readPump drains control frames and unsubscribes when the viewer leaves.
// Viewers never send commands; anything they send is discarded.
func (c *client) readPump() {
	defer func() {
		c.hub.Unsubscribe(c.id)
		if err := c.conn.Close(); err != nil {
			c.logger.Debug("close websocket", "client", c.id, "err", err)
		}
		c.logger.Info("viewer disconnected", "client", c.id)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Warn("set read deadline", "client", c.id, "err", err)
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read", "client", c.id, "err", err)
			}
			return
		}
	}
}

// writePump forwards frames and keeps the connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			c.logger.Debug("close websocket", "client", c.id, "err", err)
		}
	}()

	for {
		select {
		case snap, ok := <-c.frames:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Warn("set write deadline", "client", c.id, "err", err)
			}
			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug("write close", "client", c.id, "err", err)
				}
				return
			}
			kind, data, err := c.format.Encode(snap)
			if err != nil {
				c.logger.Error("encode snapshot", "client", c.id, "format", c.format, "err", err)
				continue
			}
			if err := c.conn.WriteMessage(kind, data); err != nil {
				c.logger.Debug("write frame", "client", c.id, "err", err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Warn("set ping deadline", "client", c.id, "err", err)
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("ping failed", "client", c.id, "err", err)
				return
			}
		}
	}
}
