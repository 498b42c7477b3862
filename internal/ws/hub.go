package ws

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"zappayBack/internal/models"
)

// Logger provides minimal logging required by the hub.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Conn is one live client connection the hub can push events to.
type Conn interface {
	Send(event string, payload interface{}) error
	Close() error
}

// Credentials is the auth payload presented on a live connection. The
// signature is an HMAC over the decimal string form of the nonce.
type Credentials struct {
	Token     string `json:"token"`
	Nonce     int64  `json:"nonce"`
	Signature string `json:"signature"`
}

// Authenticator admits connections into invoice rooms.
type Authenticator interface {
	Authenticate(ctx context.Context, token string, nonce int64, signature string, body []byte) (models.Invoice, error)
}

// Hub tracks which connections subscribe to which invoice token and
// fans status events out to them. Rooms are process local and lost on
// restart; clients re-authenticate after a reconnect.
type Hub struct {
	auth   Authenticator
	logger Logger

	mu    sync.RWMutex
	rooms map[string]map[string]Conn // invoice token -> conn id -> conn
	bound map[string]string          // conn id -> invoice token
}

func NewHub(auth Authenticator, logger Logger) *Hub {
	return &Hub{
		auth:   auth,
		logger: logger,
		rooms:  make(map[string]map[string]Conn),
		bound:  make(map[string]string),
	}
}

// Join authenticates the credentials and subscribes the connection to
// the invoice room as one atomic step, so an admitted connection can
// never miss its subscription. A connection holds at most one room:
// joining a second invoice unbinds the first.
func (h *Hub) Join(ctx context.Context, connID string, conn Conn, creds Credentials) (models.Invoice, error) {
	body := []byte(strconv.FormatInt(creds.Nonce, 10))
	invoice, err := h.auth.Authenticate(ctx, creds.Token, creds.Nonce, creds.Signature, body)
	if err != nil {
		return models.Invoice{}, err
	}

	h.mu.Lock()
	h.detachLocked(connID)
	room, ok := h.rooms[invoice.Token]
	if !ok {
		room = make(map[string]Conn)
		h.rooms[invoice.Token] = room
	}
	room[connID] = conn
	h.bound[connID] = invoice.Token
	h.mu.Unlock()

	h.logger.Infof("ws join room=%s conn=%s", invoice.Token, connID)
	return invoice, nil
}

// Leave drops the connection from whatever room it is in. Idempotent:
// safe to call for connections that never joined or already left.
func (h *Hub) Leave(connID string) {
	h.mu.Lock()
	token, ok := h.bound[connID]
	h.detachLocked(connID)
	h.mu.Unlock()
	if ok {
		h.logger.Infof("ws leave room=%s conn=%s", token, connID)
	}
}

// detachLocked clears the connection's binding and deletes the room
// when it becomes empty. Caller holds mu.
func (h *Hub) detachLocked(connID string) {
	token, ok := h.bound[connID]
	if !ok {
		return
	}
	delete(h.bound, connID)
	if room, ok := h.rooms[token]; ok {
		delete(room, connID)
		if len(room) == 0 {
			delete(h.rooms, token)
		}
	}
}

// Bound returns the invoice token a connection is subscribed to.
func (h *Hub) Bound(connID string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	token, ok := h.bound[connID]
	return token, ok
}

// Broadcast sends the event to every current member of the token's
// room. Best effort: an empty room is a no-op and failed writes only
// log, nothing is queued for absent subscribers.
func (h *Hub) Broadcast(token, event string, payload interface{}) {
	h.mu.RLock()
	room := h.rooms[token]
	conns := make(map[string]Conn, len(room))
	for id, c := range room {
		conns[id] = c
	}
	h.mu.RUnlock()

	for id, conn := range conns {
		if err := conn.Send(event, payload); err != nil {
			h.logger.Errorf("ws send to conn=%s failed: %v", id, err)
		}
	}
}

// Rooms returns a snapshot of room membership for the debug endpoint.
func (h *Hub) Rooms() map[string][]string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[string][]string, len(h.rooms))
	for token, room := range h.rooms {
		ids := make([]string, 0, len(room))
		for id := range room {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out[token] = ids
	}
	return out
}
