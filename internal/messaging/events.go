// internal/messaging/events.go

package messaging

import (
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

// Event types pushed over the websocket
const (
	EventMatch      = "match"
	EventLike       = "like"
	EventTyping     = "typing"
	EventStopTyping = "stop_typing"
)

// Event is the wire format for realtime pushes
type Event struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func newEvent(eventType string, data interface{}) Event {
	return Event{
		Type:      eventType,
		Data:      mustMarshalJSON(data),
		Timestamp: time.Now(),
	}
}

func mustMarshalJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal event payload")
		return json.RawMessage(`{}`)
	}
	return json.RawMessage(data)
}
