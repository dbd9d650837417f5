package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub tracks active connections and the order-code rooms they joined.
// Broadcast delivers a payload to every client watching one order.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]bool
	clients map[*Client]string // client -> joined room ("" = none)
}

func NewHub() *Hub {
	return &Hub{
		rooms:   make(map[string]map[*Client]bool),
		clients: make(map[*Client]string),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = ""
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.clients[c]; ok {
		h.leaveLocked(c, room)
		delete(h.clients, c)
		close(c.send)
	}
}

// Join moves the client into the room for one order code. A client watches
// at most one order at a time; joining a new room leaves the old one.
func (h *Hub) Join(c *Client, room string) {
	if room == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if prev, ok := h.clients[c]; ok && prev != room {
		h.leaveLocked(c, prev)
	}
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][c] = true
	h.clients[c] = room
	log.Printf("[payment-svc] client joined order room %s", room)
}

func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, room)
	if h.clients[c] == room {
		h.clients[c] = ""
	}
}

func (h *Hub) leaveLocked(c *Client, room string) {
	if room == "" {
		return
	}
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Broadcast sends an event to every client in the room. Slow clients whose
// send buffer is full are dropped rather than blocking the hub.
//
// The sends happen under the read lock: unregister closes c.send while
// holding the write lock, so a member seen here cannot be closed under us.
func (h *Hub) Broadcast(room string, event string, payload interface{}) {
	msg, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  payload,
	})
	if err != nil {
		log.Printf("[payment-svc] broadcast marshal: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[room] {
		select {
		case c.send <- msg:
		default:
			c.conn.Close()
		}
	}
}

// RoomSize reports how many clients watch an order code.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
