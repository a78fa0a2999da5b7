// Package notify implements the real-time admin notification channel: a
// websocket hub holding the set of admin subscribers and a dispatcher that
// decouples broadcasting from the request cycle.
package notify

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/staffdesk/employee-api/internal/api/metrics"
	"github.com/staffdesk/employee-api/internal/core/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Mirrors the permissive CORS policy of the HTTP surface.
	CheckOrigin: func(*http.Request) bool { return true },
}

// wsCommand is the only client-initiated message: {"event":"join-admin"}.
type wsCommand struct {
	Event string `json:"event"`
}

// wsPush is the only server-pushed message.
type wsPush struct {
	Event string                   `json:"event"`
	Data  domain.NotificationEvent `json:"data"`
}

const (
	commandJoinAdmin = "join-admin"
	eventNotify      = "notification"
)

// client is one websocket connection. Lifecycle: connected, optionally
// joined to the admin group, then disconnected.
type client struct {
	conn   *websocket.Conn
	send   chan []byte
	joined bool
}

// Hub maintains the set of connected clients and broadcasts change events
// to those that joined the admin group. All delivery is best-effort:
// broadcasting never blocks and never errors; a slow subscriber is
// disconnected rather than awaited.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	admins  map[*client]struct{}
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		admins:  make(map[*client]struct{}),
		log:     log,
	}
}

// ServeWS upgrades the request to a websocket connection and registers it
// with the hub.
func (h *Hub) ServeWS(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	cl := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(cl)
	h.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("ws client connected")

	go h.writePump(cl)
	go h.readPump(cl)
	return nil
}

// Broadcast delivers the event to every joined admin subscriber. With no
// subscribers it is a silent no-op.
func (h *Hub) Broadcast(event domain.NotificationEvent) {
	payload, err := json.Marshal(wsPush{Event: eventNotify, Data: event})
	if err != nil {
		h.log.Error().Err(err).Msg("failed to encode notification")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for cl := range h.admins {
		select {
		case cl.send <- payload:
			metrics.NotificationsDeliveredTotal.WithLabelValues(string(event.Type)).Inc()
		default:
			// Subscriber too slow to keep up: drop it rather than block.
			metrics.NotificationsDroppedTotal.Inc()
			h.removeLocked(cl)
		}
	}
}

// AdminCount returns the current size of the admin broadcast group.
func (h *Hub) AdminCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.admins)
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[cl] = struct{}{}
}

// join moves a connection into the admin group. Idempotent.
func (h *Hub) join(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cl.joined {
		return
	}
	cl.joined = true
	h.admins[cl] = struct{}{}
	metrics.AdminSubscribers.Set(float64(len(h.admins)))
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(cl)
}

func (h *Hub) removeLocked(cl *client) {
	if _, ok := h.clients[cl]; !ok {
		return
	}
	delete(h.clients, cl)
	delete(h.admins, cl)
	close(cl.send)
	metrics.AdminSubscribers.Set(float64(len(h.admins)))
}

// readPump consumes client commands until the connection drops. The only
// recognised command is join-admin; everything else is ignored.
func (h *Hub) readPump(cl *client) {
	defer func() {
		h.remove(cl)
		_ = cl.conn.Close()
		h.log.Debug().Msg("ws client disconnected")
	}()

	cl.conn.SetReadLimit(maxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var cmd wsCommand
		if err := cl.conn.ReadJSON(&cmd); err != nil {
			return
		}
		if cmd.Event == commandJoinAdmin {
			h.join(cl)
			h.log.Debug().Msg("ws client joined admin group")
		}
	}
}

// writePump drains the client's send channel to the connection and keeps
// it alive with pings.
func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
