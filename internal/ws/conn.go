package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeDeadline = 5 * time.Second

// frame is the JSON envelope written to websocket clients.
type frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// SocketConn adapts a gorilla websocket connection to the hub. Writes
// are guarded by a mutex because broadcasts and the transport's control
// frames happen on different goroutines.
type SocketConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewSocketConn(conn *websocket.Conn) *SocketConn {
	return &SocketConn{conn: conn}
}

func (c *SocketConn) Send(event string, payload interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return c.conn.WriteJSON(frame{Event: event, Data: payload})
}

func (c *SocketConn) Close() error { return c.conn.Close() }

// Ping sends a ping control frame.
func (c *SocketConn) Ping() error {
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeDeadline))
}
