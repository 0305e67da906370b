package messaging

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Shutdown)
	return hub
}

func TestHub(t *testing.T) {
	t.Run("event reaches a connected client", func(t *testing.T) {
		hub := newTestHub(t)
		client := NewClient(hub, nil, 7)
		hub.registerClient(client)

		hub.LikeReceived(7)

		data := <-client.send
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, EventLike, event.Type)
	})

	t.Run("send to a disconnected user is dropped", func(t *testing.T) {
		hub := newTestHub(t)

		hub.LikeReceived(7)

		assert.False(t, hub.IsUserOnline(7))
	})

	t.Run("send after close does not panic", func(t *testing.T) {
		hub := newTestHub(t)
		client := NewClient(hub, nil, 7)
		hub.registerClient(client)

		client.close()

		assert.NotPanics(t, func() { hub.LikeReceived(7) })
	})

	t.Run("concurrent sends race a close safely", func(t *testing.T) {
		hub := newTestHub(t)
		client := NewClient(hub, nil, 7)
		hub.registerClient(client)

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				hub.LikeReceived(7)
			}()
		}
		client.close()
		wg.Wait()
	})

	t.Run("close is idempotent", func(t *testing.T) {
		client := NewClient(NewHub(), nil, 7)

		client.close()
		assert.NotPanics(t, client.close)
	})

	t.Run("new socket replaces the old one for the same user", func(t *testing.T) {
		hub := newTestHub(t)
		old := NewClient(hub, nil, 7)
		hub.registerClient(old)

		replacement := NewClient(hub, nil, 7)
		hub.registerClient(replacement)

		assert.Equal(t, 1, hub.ActiveConnections())
		assert.False(t, replacement.closed)
		assert.True(t, old.closed)
	})
}
