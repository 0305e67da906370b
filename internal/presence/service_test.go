package presence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewService(client, time.Minute), mr
}

func TestPresence(t *testing.T) {
	ctx := context.Background()

	t.Run("heartbeat marks the user online", func(t *testing.T) {
		svc, _ := newTestService(t)

		require.NoError(t, svc.Touch(ctx, 7))

		online, err := svc.IsOnline(ctx, 7)
		require.NoError(t, err)
		assert.True(t, online)
	})

	t.Run("user with no heartbeat is offline", func(t *testing.T) {
		svc, _ := newTestService(t)

		online, err := svc.IsOnline(ctx, 7)
		require.NoError(t, err)
		assert.False(t, online)

		_, seen, err := svc.LastSeen(ctx, 7)
		require.NoError(t, err)
		assert.False(t, seen)
	})

	t.Run("presence expires but last seen survives", func(t *testing.T) {
		svc, mr := newTestService(t)

		require.NoError(t, svc.Touch(ctx, 7))
		mr.FastForward(2 * time.Minute)

		online, err := svc.IsOnline(ctx, 7)
		require.NoError(t, err)
		assert.False(t, online)

		lastSeen, seen, err := svc.LastSeen(ctx, 7)
		require.NoError(t, err)
		assert.True(t, seen)
		assert.WithinDuration(t, time.Now(), lastSeen, time.Minute)
	})

	t.Run("batch status covers online and offline users", func(t *testing.T) {
		svc, _ := newTestService(t)

		require.NoError(t, svc.Touch(ctx, 7))

		statuses, err := svc.OnlineSet(ctx, []int64{7, 8})
		require.NoError(t, err)
		assert.Equal(t, map[int64]bool{7: true, 8: false}, statuses)

		empty, err := svc.OnlineSet(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("new heartbeat refreshes last seen", func(t *testing.T) {
		svc, mr := newTestService(t)

		require.NoError(t, svc.Touch(ctx, 7))
		mr.FastForward(2 * time.Minute)
		require.NoError(t, svc.Touch(ctx, 7))

		online, err := svc.IsOnline(ctx, 7)
		require.NoError(t, err)
		assert.True(t, online)
	})
}
