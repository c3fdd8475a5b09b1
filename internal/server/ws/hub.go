package ws

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is the payload pushed to connected clients.
type Event struct {
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

type client struct {
	conn   *websocket.Conn
	userID int64
	mu     sync.Mutex
}

func (c *client) send(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(event)
}

// Hub tracks connected clients and fans notification events out to them.
// Delivery is best effort: a failed write drops the connection.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub constructs an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			// The mobile client connects from a non-browser origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Serve upgrades the request and keeps the connection registered until the
// peer disconnects.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID int64) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{conn: conn, userID: userID}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.readLoop(c)
	return nil
}

// readLoop consumes (and discards) inbound frames so close/ping control
// messages are processed, and unregisters the client when the peer goes away.
func (h *Hub) readLoop(c *client) {
	defer h.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.conn.Close()
}

// NotifyUser delivers the event to every connection owned by the user.
func (h *Hub) NotifyUser(userID int64, event Event) {
	for _, c := range h.snapshot() {
		if c.userID != userID {
			continue
		}
		if err := c.send(event); err != nil {
			h.logger.Warn("websocket write failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
			h.drop(c)
		}
	}
}

// Broadcast delivers the event to every connected client.
func (h *Hub) Broadcast(event Event) {
	for _, c := range h.snapshot() {
		if err := c.send(event); err != nil {
			h.logger.Warn("websocket write failed", slog.Int64("user_id", c.userID), slog.String("error", err.Error()))
			h.drop(c)
		}
	}
}

// ClientCount reports the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) snapshot() []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	return clients
}

// Close terminates all connections, typically at shutdown.
func (h *Hub) Close() {
	for _, c := range h.snapshot() {
		h.drop(c)
	}
}
