package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"
)

// Hub tracks the live sessions of the server.
type Hub struct {
	cfg Config

	mu       sync.RWMutex
	sessions map[string]context.CancelFunc // session id -> stop
	wg       sync.WaitGroup
}

func NewHub(cfg Config) *Hub {
	return &Hub{
		cfg:      cfg,
		sessions: make(map[string]context.CancelFunc),
	}
}

// Start creates a session and runs it until ctx is cancelled or the hub stops.
func (h *Hub) Start(ctx context.Context) *Session {
	s := New(h.cfg)
	ctx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.sessions[s.ID] = cancel
	h.mu.Unlock()

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		s.Run(ctx)
		h.remove(s.ID)
	}()

	slog.Info("session opened", "session", s.ID, "client", s.ClientID)
	return s
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	cancel, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if ok {
		cancel()
		slog.Info("session closed", "session", id)
	}
}

// Close stops one session.
func (h *Hub) Close(id string) {
	h.mu.RLock()
	cancel, ok := h.sessions[id]
	h.mu.RUnlock()
	if ok {
		cancel()
	}
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Stop ends every session and waits for their loops to exit.
func (h *Hub) Stop() {
	h.mu.RLock()
	for _, cancel := range h.sessions {
		cancel()
	}
	h.mu.RUnlock()
	h.wg.Wait()
}

// ServeWS upgrades the request and binds the connection to a new session.
func (h *Hub) ServeWS(originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			slog.Error("websocket accept", "error", err)
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		s := h.Start(ctx)
		defer h.Close(s.ID)

		client := NewClient(conn, s)
		go client.WritePump(ctx)
		client.ReadPump(ctx)
	}
}
