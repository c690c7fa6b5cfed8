// Package ws maintains the set of connected dashboard clients and
// broadcasts each cycle's report and alerts to them as typed JSON
// envelopes. Slow or gone clients are dropped rather than allowed to block
// the broadcast.
package ws

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/buildwatch/safesite/internal/models"
)

// Envelope wraps every broadcast message with its type so dashboard
// clients can dispatch without sniffing the payload.
type Envelope struct {
	Type    string `json:"type"` // "report" or "alert"
	Payload any    `json:"payload"`
}

// Hub fans broadcast messages out to all registered clients.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	logger     zerolog.Logger
}

// NewHub creates a hub. Call Run in a goroutine before registering clients.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 8),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run owns the client set. It processes registrations, unregistrations,
// and broadcasts until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug().Str("remote", client.remoteAddr()).Msg("dashboard client connected")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debug().Str("remote", client.remoteAddr()).Msg("dashboard client disconnected")
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Send buffer full, client is stalled. Drop it.
					h.logger.Debug().Str("remote", client.remoteAddr()).Msg("dropping stalled dashboard client")
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// BroadcastReport publishes a cycle report to all clients.
func (h *Hub) BroadcastReport(report models.CycleReport) {
	h.publish(Envelope{Type: "report", Payload: report})
}

// BroadcastAlert publishes an alert to all clients.
func (h *Hub) BroadcastAlert(alert *models.Alert) {
	h.publish(Envelope{Type: "alert", Payload: alert})
}

func (h *Hub) publish(env Envelope) {
	message, err := json.Marshal(env)
	if err != nil {
		h.logger.Error().Err(err).Str("type", env.Type).Msg("failed to marshal broadcast envelope")
		return
	}
	h.broadcast <- message
}
