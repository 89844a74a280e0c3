package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"travelmatch/backend/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 256
)

// WebSocketClient implements Client over a gorilla websocket connection.
type WebSocketClient struct {
	connID  string
	userID  string
	Conn    *websocket.Conn
	Manager *Manager

	send   chan models.EventEnvelope
	closed chan struct{}
	once   sync.Once
}

// NewWebSocketClient wraps an upgraded connection for the given verified user.
func NewWebSocketClient(userID string, conn *websocket.Conn, m *Manager) *WebSocketClient {
	return &WebSocketClient{
		connID:  uuid.New().String(),
		userID:  userID,
		Conn:    conn,
		Manager: m,
		send:    make(chan models.EventEnvelope, sendBufferSize),
		closed:  make(chan struct{}),
	}
}

func (c *WebSocketClient) ConnectionID() string { return c.connID }
func (c *WebSocketClient) UserID() string       { return c.userID }

// Deliver enqueues an event without blocking. A full buffer means the client
// cannot keep up; the connection is dropped to keep backpressure bounded.
func (c *WebSocketClient) Deliver(env models.EventEnvelope) bool {
	select {
	case <-c.closed:
		return false
	case c.send <- env:
		return true
	default:
		log.Printf("Dropping slow client %s (user %s): send buffer full", c.connID, c.userID)
		c.Close()
		return false
	}
}

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close signals both pumps to stop. The read pump's deferred cleanup handles
// presence removal.
func (c *WebSocketClient) Close() {
	c.once.Do(func() {
		close(c.closed)
	})
}

// readPump reads frames off the socket and dispatches them one at a time, so
// events from a single connection are handled in arrival order.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Manager.Disconnect(c)
		c.Close()
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message from %s: %v", c.userID, err)
			}
			break
		}
		c.Manager.Dispatch(c, message)
	}
}

// writePump drains the send channel into the socket and keeps the connection
// alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case <-c.closed:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case env := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))

			data, err := json.Marshal(env)
			if err != nil {
				log.Printf("Error encoding event for client %s: %v", c.userID, err)
				continue
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
