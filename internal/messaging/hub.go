// internal/messaging/hub.go
// Hub maintains the active websocket connections, one per user. Message
// content lives with the external chat provider; the hub only pushes
// lightweight events (new match, new like, typing).

package messaging

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub maintains active websocket connections
type Hub struct {
	clients    map[int64]*Client
	clientsMux sync.RWMutex

	register   chan *Client
	unregister chan *Client

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a hub. Call Run in a goroutine before serving connections.
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		clients:    make(map[int64]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run processes register/unregister events until Shutdown
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-h.ctx.Done():
			h.cleanup()
			return
		}
	}
}

// Shutdown closes all connections and stops the hub
func (h *Hub) Shutdown() {
	h.cancel()
}

// MatchFormed pushes a match event to both participants
func (h *Hub) MatchFormed(userA, userB int64, channelID string) {
	event := newEvent(EventMatch, map[string]interface{}{
		"channel_id": channelID,
	})

	h.SendToUser(userA, event)
	h.SendToUser(userB, event)
}

// LikeReceived pushes a like event to the receiver
func (h *Hub) LikeReceived(receiverID int64) {
	h.SendToUser(receiverID, newEvent(EventLike, nil))
}

// SendToUser delivers an event if the user is connected, else drops it
func (h *Hub) SendToUser(userID int64, event Event) {
	h.clientsMux.RLock()
	client, exists := h.clients[userID]
	h.clientsMux.RUnlock()

	if !exists {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	if !client.trySend(data) {
		go func() { h.unregister <- client }()
	}
}

// IsUserOnline reports whether the user has a live websocket connection
func (h *Hub) IsUserOnline(userID int64) bool {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()

	_, exists := h.clients[userID]
	return exists
}

// ActiveConnections returns the number of connected clients
func (h *Hub) ActiveConnections() int {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	// One connection per user; a new socket replaces the old one
	if old, exists := h.clients[client.userID]; exists {
		old.close()
	}

	h.clients[client.userID] = client

	logrus.WithFields(logrus.Fields{
		"user_id": client.userID,
		"clients": len(h.clients),
	}).Debug("Websocket client connected")
}

func (h *Hub) unregisterClient(client *Client) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	if current, exists := h.clients[client.userID]; exists && current == client {
		client.close()
		delete(h.clients, client.userID)

		logrus.WithFields(logrus.Fields{
			"user_id": client.userID,
			"clients": len(h.clients),
		}).Debug("Websocket client disconnected")
	}
}

func (h *Hub) cleanup() {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	for _, client := range h.clients {
		client.close()
	}
	h.clients = make(map[int64]*Client)
}
