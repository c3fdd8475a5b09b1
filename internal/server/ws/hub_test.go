package ws

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func hubServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := hub.Serve(w, r, userID); err != nil {
			t.Errorf("serve: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server, userID int64) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?userId=" + strconv.FormatInt(userID, 10)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.After(time.Second)
	for hub.ClientCount() != want {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for %d clients, have %d", want, hub.ClientCount())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var event Event
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read event: %v", err)
	}
	return event
}

func TestHubNotifyUserTargetsOwnerOnly(t *testing.T) {
	hub := NewHub(testLogger())
	defer hub.Close()
	server := hubServer(t, hub)

	owner := dial(t, server, 7)
	other := dial(t, server, 8)
	waitForClients(t, hub, 2)

	hub.NotifyUser(7, Event{Title: "Order update", Body: "Your order #5 is now washing"})

	event := readEvent(t, owner)
	if event.Title != "Order update" {
		t.Fatalf("unexpected event: %+v", event)
	}

	_ = other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	var stray Event
	if err := other.ReadJSON(&stray); err == nil {
		t.Fatalf("expected no event for other user, got %+v", stray)
	}
}

func TestHubBroadcastReachesEveryClient(t *testing.T) {
	hub := NewHub(testLogger())
	defer hub.Close()
	server := hubServer(t, hub)

	first := dial(t, server, 1)
	second := dial(t, server, 2)
	waitForClients(t, hub, 2)

	hub.Broadcast(Event{Title: "Holiday hours", Body: "We close early on Friday"})

	for _, conn := range []*websocket.Conn{first, second} {
		event := readEvent(t, conn)
		if event.Title != "Holiday hours" {
			t.Fatalf("unexpected event: %+v", event)
		}
	}
}

func TestHubDropsDisconnectedClients(t *testing.T) {
	hub := NewHub(testLogger())
	defer hub.Close()
	server := hubServer(t, hub)

	conn := dial(t, server, 7)
	waitForClients(t, hub, 1)

	_ = conn.Close()
	waitForClients(t, hub, 0)
}

func TestHubCloseTerminatesConnections(t *testing.T) {
	hub := NewHub(testLogger())
	server := hubServer(t, hub)

	dial(t, server, 7)
	waitForClients(t, hub, 1)

	hub.Close()
	if hub.ClientCount() != 0 {
		t.Fatalf("expected no clients after close, got %d", hub.ClientCount())
	}
}
