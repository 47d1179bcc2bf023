// Package ws pushes full deal-collection snapshots to connected viewers.
// Every listing-store update replaces what a client has; there is no
// per-record patching on the wire.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nijamuddin66526-boop/offerzon/internal/models"
)

// envelope is the single frame type clients receive.
type envelope struct {
	Type  string        `json:"type"` // "deals_snapshot"
	Count int           `json:"count"`
	Deals []models.Deal `json:"deals"`
}

type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	clients    map[*client]bool
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 8),
		clients:    make(map[*client]bool),
	}
}

// Run owns the client set. It returns when the context is cancelled, closing
// every connected client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			slog.Info("Viewer connected", "viewers", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				slog.Info("Viewer disconnected", "viewers", len(h.clients))
			}

		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					// Slow consumer; drop it rather than stall the hub.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

func marshalSnapshot(deals []models.Deal) ([]byte, error) {
	return json.Marshal(envelope{Type: "deals_snapshot", Count: len(deals), Deals: deals})
}

// BroadcastSnapshot fans the new full collection out to every viewer.
func (h *Hub) BroadcastSnapshot(deals []models.Deal) {
	payload, err := marshalSnapshot(deals)
	if err != nil {
		slog.Error("Failed to encode deals snapshot", "error", err)
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		slog.Warn("Broadcast queue full, dropping snapshot")
	}
}
