package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"zappayBack/internal/models"
	"zappayBack/internal/ws"
)

const (
	readLimit    = 1 << 20           // 1 MB
	readDeadline = 120 * time.Second // extended by every frame and pong
	pingInterval = 15 * time.Second
	opTimeout    = 3 * time.Second // per-event DB budget
)

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

// clientFrame is a frame received from a live connection. Unknown
// events are ignored.
type clientFrame struct {
	Event     string `json:"event"`
	Token     string `json:"token,omitempty"`
	Nonce     int64  `json:"nonce,omitempty"`
	Signature string `json:"signature,omitempty"`
}

func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	rawConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Printf("websocket upgrade error: %v", err)
		return
	}

	connID := uuid.NewString()
	conn := ws.NewSocketConn(rawConn)

	rawConn.SetReadLimit(readLimit)
	_ = rawConn.SetReadDeadline(time.Now().Add(readDeadline))
	rawConn.SetPongHandler(func(string) error {
		return rawConn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	go app.pingLoop(conn, rawConn)
	go app.readLoop(connID, conn, rawConn)
}

func (app *application) pingLoop(conn *ws.SocketConn, raw *websocket.Conn) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for range t.C {
		if err := conn.Ping(); err != nil {
			_ = raw.Close()
			return
		}
	}
}

func (app *application) readLoop(connID string, conn *ws.SocketConn, raw *websocket.Conn) {
	// the deferred Leave is the single cleanup path for room
	// membership; Leave is idempotent so any exit route is safe
	defer func() {
		app.hub.Leave(connID)
		_ = conn.Close()
	}()

	for {
		var frame clientFrame
		if err := raw.ReadJSON(&frame); err != nil {
			return
		}
		_ = raw.SetReadDeadline(time.Now().Add(readDeadline))

		switch frame.Event {
		case "auth":
			creds := ws.Credentials{Token: frame.Token, Nonce: frame.Nonce, Signature: frame.Signature}
			ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
			_, err := app.hub.Join(ctx, connID, conn, creds)
			cancel()
			if err != nil {
				// reject silently on the wire, no hint about which of
				// token/nonce/signature was wrong
				app.errorLog.Printf("ws auth failed conn=%s: %v", connID, err)
				continue
			}
			_ = conn.Send("info", "authenticated!")

		case "info":
			token, ok := app.hub.Bound(connID)
			if !ok {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
			invoice, err := app.invoiceRepo.GetInvoiceByToken(ctx, token)
			cancel()
			if err != nil {
				if !errors.Is(err, models.ErrNoRecord) {
					app.errorLog.Printf("ws info conn=%s: %v", connID, err)
				}
				continue
			}
			_ = conn.Send("info", invoice)
		}
	}
}
