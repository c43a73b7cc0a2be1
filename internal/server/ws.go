package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/spigell/car-advisor/internal/advisor"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// searchHub tracks live search connections so they can be closed on shutdown.
type searchHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func newSearchHub() *searchHub {
	return &searchHub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *searchHub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *searchHub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func (h *searchHub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *searchHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.Close()
		delete(h.clients, c)
	}
}

// liveSearch answers every JSON query message with the matching suggestions.
func (s *Server) liveSearch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	s.hub.add(conn)

	// The request context ends with this handler; the pump gets its own.
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	go s.readPump(ctx, cancel, conn)
}

func (s *Server) readPump(ctx context.Context, cancel context.CancelFunc, c *websocket.Conn) {
	defer func() {
		cancel()
		s.hub.remove(c)
		_ = c.Close()
	}()

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			return
		}

		var req advisor.Request
		if err := json.Unmarshal(data, &req); err != nil {
			if err := c.WriteJSON(errorResponse{Error: "invalid query: " + err.Error()}); err != nil {
				return
			}
			continue
		}

		suggestions, err := s.advisor.Suggest(ctx, req)
		if err != nil {
			if err := c.WriteJSON(errorResponse{Error: err.Error()}); err != nil {
				return
			}
			continue
		}

		if err := c.WriteJSON(suggestionsResponse{Cars: suggestions}); err != nil {
			return
		}
	}
}
