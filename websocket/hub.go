package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Message is the envelope for every push the server sends
type Message struct {
	Type      string      `json:"type"`
	BookingID string      `json:"booking_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub manages all WebSocket connections. Tracking frames go to the
// booking's resident; lifecycle notices go to the assigned worker.
type Hub struct {
	// Registered clients by user id
	Clients map[string]*Client

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// Broadcast channel for messages to all clients
	Broadcast chan *Message

	mu sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan *Message),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client.UserID] = client
			h.mu.Unlock()
			log.Printf("🔌 Client registered: user=%s role=%s conn=%s", client.UserID, client.Role, client.ConnID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if current, ok := h.Clients[client.UserID]; ok && current.ConnID == client.ConnID {
				delete(h.Clients, client.UserID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Client unregistered: user=%s conn=%s", client.UserID, client.ConnID)

		case message := <-h.Broadcast:
			h.broadcastMessage(message)
		}
	}
}

// broadcastMessage sends a message to all connected clients
func (h *Hub) broadcastMessage(message *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("❌ Error marshaling message: %v", err)
		return
	}

	for _, client := range h.Clients {
		select {
		case client.Send <- data:
		default:
			log.Printf("⚠️ User %s's send buffer is full", client.UserID)
		}
	}
}

// SendToUser sends a message to a specific user if connected
func (h *Hub) SendToUser(userID string, message *Message) {
	h.mu.RLock()
	client, exists := h.Clients[userID]
	h.mu.RUnlock()

	if !exists {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("❌ Error marshaling message: %v", err)
		return
	}

	select {
	case client.Send <- data:
	default:
		log.Printf("⚠️ User %s's send buffer is full", userID)
	}
}

// IsUserConnected checks if a user is currently connected
func (h *Hub) IsUserConnected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.Clients[userID]
	return exists
}

// SendTrackingUpdate pushes a live tracking frame to the booking's resident
func (h *Hub) SendTrackingUpdate(residentID, bookingID string, frame interface{}) {
	h.SendToUser(residentID, &Message{
		Type:      "tracking_update",
		BookingID: bookingID,
		Data:      frame,
		Timestamp: time.Now(),
	})
}

// SendJobAssigned notifies the worker that a new job landed on their board
func (h *Hub) SendJobAssigned(workerID, bookingID string, booking interface{}) {
	h.SendToUser(workerID, &Message{
		Type:      "job_assigned",
		BookingID: bookingID,
		Data:      booking,
		Timestamp: time.Now(),
	})
	log.Printf("📡 Job %s pushed to worker %s", bookingID, workerID)
}

// SendBookingCancelled notifies the worker that their tracked booking was
// cancelled so the dashboard can show the "job unavailable" interstitial
func (h *Hub) SendBookingCancelled(workerID, bookingID string) {
	h.SendToUser(workerID, &Message{
		Type:      "booking_cancelled",
		BookingID: bookingID,
		Timestamp: time.Now(),
	})
	log.Printf("📡 Cancellation of %s pushed to worker %s", bookingID, workerID)
}
