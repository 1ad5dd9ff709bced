package cart

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"saunahub/pkg/models"
)

// Hub fans cart changes out to every browser tab of a session. Connections
// are grouped by session id so one shopper's tabs stay in lockstep without
// leaking cart state across sessions.
type Hub struct {
	mu    sync.Mutex
	conns map[string]map[*websocket.Conn]struct{}
}

type cartEvent struct {
	Type          string       `json:"type"`
	Cart          *models.Cart `json:"cart"`
	TotalQuantity int          `json:"totalQuantity"`
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]map[*websocket.Conn]struct{})}
}

func (h *Hub) Add(sessionID string, ws *websocket.Conn) {
	h.mu.Lock()
	set, ok := h.conns[sessionID]
	if !ok {
		set = make(map[*websocket.Conn]struct{})
		h.conns[sessionID] = set
	}
	set[ws] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(sessionID string, ws *websocket.Conn) {
	h.mu.Lock()
	if set, ok := h.conns[sessionID]; ok {
		delete(set, ws)
		if len(set) == 0 {
			delete(h.conns, sessionID)
		}
	}
	h.mu.Unlock()
	_ = ws.Close()
}

// BroadcastCart pushes the latest cart snapshot to every tab of a session.
// Dead connections are dropped on write failure.
func (h *Hub) BroadcastCart(sessionID string, c *models.Cart) {
	b, err := json.Marshal(cartEvent{
		Type:          "cart_changed",
		Cart:          c,
		TotalQuantity: c.TotalQuantity(),
	})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.conns[sessionID]
	for ws := range set {
		if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = ws.Close()
			delete(set, ws)
		}
	}
	if len(set) == 0 {
		delete(h.conns, sessionID)
	}
}

// Count reports connected tabs for a session.
func (h *Hub) Count(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[sessionID])
}
