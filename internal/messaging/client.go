// internal/messaging/client.go

package messaging

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/heartlinkapp/heartlink-backend/internal/relationship"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4 * 1024
)

// Client represents a connected websocket peer
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID int64

	mu     sync.Mutex
	closed bool
}

// NewClient wraps a websocket connection for the given user
func NewClient(hub *Hub, conn *websocket.Conn, userID int64) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 64),
		userID: userID,
	}
}

// Start launches the read and write pumps
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).Debug("Websocket read error")
			}
			break
		}

		c.processEvent(message)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// processEvent handles client-originated events. Only typing indicators are
// accepted; everything else goes through the chat provider.
func (c *Client) processEvent(data []byte) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return
	}

	switch event.Type {
	case EventTyping, EventStopTyping:
		c.relayTyping(event)
	default:
		logrus.WithField("type", event.Type).Debug("Ignoring unknown websocket event")
	}
}

// relayTyping forwards a typing indicator to the other channel participant.
// The sender must be one of the two users encoded in the channel ID.
func (c *Client) relayTyping(event Event) {
	var payload struct {
		ChannelID string `json:"channel_id"`
	}
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return
	}

	lo, hi, ok := relationship.ParseChannelID(payload.ChannelID)
	if !ok {
		return
	}

	var peerID int64
	switch c.userID {
	case lo:
		peerID = hi
	case hi:
		peerID = lo
	default:
		return
	}

	c.hub.SendToUser(peerID, newEvent(event.Type, map[string]interface{}{
		"channel_id": payload.ChannelID,
		"user_id":    c.userID,
	}))
}

// trySend queues data for the write pump. It reports false when the client
// is closed or its buffer is full. The mutex orders it against close, so a
// send can never hit a closed channel.
func (c *Client) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}
