// Package websocket provides the live stats feed for the admin dashboard.
// file: websocket/connection.go
package websocket

import (
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dalibouzir/MeriemBooking-sub000/logger"
)

// WSConn is an interface for the WebSocket connection.
type WSConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	ReadMessage() (int, []byte, error)
	Close() error
	RemoteAddr() net.Addr
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
}

// Connection represents a single admin dashboard's WebSocket connection.
type Connection struct {
	conn WSConn
	send chan []byte
}

// Configuration constants.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Upgrader upgrades HTTP requests to WebSocket connections. The route is
// behind the admin session gate, so origins are not re-checked here.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWs upgrades the HTTP request to a WebSocket connection and starts
// the read and write pumps. The feed is one-way: dashboards only listen.
func ServeWs(w http.ResponseWriter, r *http.Request) {
	logger.Info.Printf("[ServeWs] Upgrading to WS: remoteAddr=%v", r.RemoteAddr)
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error.Printf("[ServeWs] WebSocket upgrade error: %v", err)
		return
	}

	c := &Connection{
		conn: wsConn,
		send: make(chan []byte, 64),
	}
	registerConnection(c)

	go c.readPump()
	go c.writePump()
}

// readPump drains inbound frames so pings/pongs and close frames are
// processed; dashboard clients send nothing we act on.
func (c *Connection) readPump() {
	defer func() {
		unregisterConnection(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			logger.Debug.Printf("[readPump] Connection %v closed: %v", c.conn.RemoteAddr(), err)
			return
		}
	}
}

// writePump forwards queued broadcasts to the client and keeps the
// connection alive with periodic pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Warn.Printf("[writePump] Write to %v failed: %v", c.conn.RemoteAddr(), err)
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
