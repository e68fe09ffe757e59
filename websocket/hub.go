package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Event types broadcast on the engagement feed
const (
	EventReelCreated   = "reel_created"
	EventReelLiked     = "reel_liked"
	EventReelCommented = "reel_commented"
)

// Event is a message sent over the engagement feed.
type Event struct {
	Type   string      `json:"type"`
	ReelID string      `json:"reel_id,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Client represents a connected WebSocket subscriber
type Client struct {
	ID   string
	Conn *websocket.Conn
	send chan Event
}

// Hub maintains the set of active clients and fans out engagement events.
// Subscription is anonymous; everyone receives everything.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		case event := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- event:
				default:
					// Slow consumer, drop the event rather than block the hub
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues an event for delivery to every connected client. It never
// blocks the caller; when the hub is saturated the event is dropped.
func (h *Hub) Broadcast(event Event) {
	select {
	case h.broadcast <- event:
	default:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
