package realtime

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	domain "github.com/BruksfildServices01/petsit-scheduler/internal/domain/booking"
	ucBooking "github.com/BruksfildServices01/petsit-scheduler/internal/usecase/booking"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Source is a session that can be watched.
type Source interface {
	Actor() domain.Actor
	Subscribe() (<-chan ucBooking.Change, func())
}

type client struct {
	actorID string
	conn    *websocket.Conn
}

// Hub tracks the open change streams so they can be closed on shutdown.
type Hub struct {
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the auth middleware already checked the caller
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:     log,
		clients: make(map[*client]struct{}),
	}
}

// Serve upgrades the request and blocks until the socket closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, src Source) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	cl := &client{actorID: src.Actor().ID, conn: conn}
	h.register(cl)
	defer h.unregister(cl)

	changes, cancel := src.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go h.readPump(cl, done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ch, ok := <-changes:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ch); err != nil {
				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case <-done:
			return nil
		}
	}
}

// readPump only watches for pongs and the close frame.
func (h *Hub) readPump(cl *client, done chan<- struct{}) {
	defer close(done)
	cl.conn.SetReadLimit(512)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Info("stream opened", slog.String("actor_id", cl.actorID), slog.Int("open", n))
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		_ = cl.conn.Close()
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Info("stream closed", slog.String("actor_id", cl.actorID), slog.Int("open", n))
}

func (h *Hub) Open() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close drops every open stream.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		_ = cl.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown"),
			time.Now().Add(writeWait),
		)
		_ = cl.conn.Close()
		delete(h.clients, cl)
	}
}
