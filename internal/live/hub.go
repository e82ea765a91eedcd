// Package live pushes proofing activity (selection toggles, submissions,
// reopens) to connected admin dashboards over WebSocket.
package live

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	EventSelection  = "selection.toggle"
	EventSubmission = "selection.submit"
	EventReopen     = "album.reopen"
)

// Event is one proofing activity notification.
type Event struct {
	Type      string    `json:"type"`
	AlbumID   string    `json:"album_id"`
	PhotoID   string    `json:"photo_id,omitempty"`
	Selected  bool      `json:"selected,omitempty"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans events out to every connected admin client. Slow clients are
// dropped rather than allowed to block the broadcast loop.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*client]bool
	broadcast  chan Event
	register   chan *client
	unregister chan *client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan Event, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Run processes registrations and broadcasts. Call it once, in its own
// goroutine, before serving connections.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			payload, err := json.Marshal(ev)
			if err != nil {
				slog.Error("Failed to marshal live event", "error", err)
				continue
			}
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- payload:
				default:
					// Send buffer full; this client is too slow.
					go func(c *client) { h.unregister <- c }(c)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish queues an event for broadcast. Never blocks the caller; if the
// hub is saturated the event is dropped (the dashboard is advisory, the
// store remains the source of truth).
func (h *Hub) Publish(ev Event) {
	ev.Timestamp = time.Now()
	select {
	case h.broadcast <- ev:
	default:
		slog.Warn("Live event dropped, hub saturated", "type", ev.Type)
	}
}
