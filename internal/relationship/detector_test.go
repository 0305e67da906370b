package relationship

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectorIsMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("reciprocal likes form a match", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addLike(1, 2)
		repo.addLike(2, 1)

		detector := NewDetector(repo)

		matched, err := detector.IsMatch(ctx, 1, 2)
		require.NoError(t, err)
		assert.True(t, matched)
	})

	t.Run("symmetric regardless of argument order", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addLike(1, 2)
		repo.addLike(2, 1)

		detector := NewDetector(repo)

		matched, err := detector.IsMatch(ctx, 2, 1)
		require.NoError(t, err)
		assert.True(t, matched)
	})

	t.Run("one-way like is not a match", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addLike(1, 2)

		detector := NewDetector(repo)

		matched, err := detector.IsMatch(ctx, 1, 2)
		require.NoError(t, err)
		assert.False(t, matched)
	})

	t.Run("no likes is not a match", func(t *testing.T) {
		detector := NewDetector(newFakeRepo())

		matched, err := detector.IsMatch(ctx, 1, 2)
		require.NoError(t, err)
		assert.False(t, matched)
	})

	t.Run("a user never matches themselves", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addLike(1, 1)

		detector := NewDetector(repo)

		matched, err := detector.IsMatch(ctx, 1, 1)
		require.NoError(t, err)
		assert.False(t, matched)
	})

	t.Run("non-positive IDs never match", func(t *testing.T) {
		detector := NewDetector(newFakeRepo())

		matched, err := detector.IsMatch(ctx, 0, 2)
		require.NoError(t, err)
		assert.False(t, matched)

		matched, err = detector.IsMatch(ctx, 1, -3)
		require.NoError(t, err)
		assert.False(t, matched)
	})

	t.Run("storage errors propagate", func(t *testing.T) {
		repo := newFakeRepo()
		repo.failFindLikes = true

		detector := NewDetector(repo)

		_, err := detector.IsMatch(ctx, 1, 2)
		assert.Error(t, err)
	})
}

func TestChannelID(t *testing.T) {
	assert.Equal(t, "match_3_7", ChannelID(3, 7))
	assert.Equal(t, "match_3_7", ChannelID(7, 3), "channel key must not depend on argument order")
}

func TestParseChannelID(t *testing.T) {
	lo, hi, ok := ParseChannelID("match_3_7")
	require.True(t, ok)
	assert.Equal(t, int64(3), lo)
	assert.Equal(t, int64(7), hi)

	for _, bad := range []string{"", "match_7_3", "match_3_3", "chat_3_7", "match_0_7", "match_x_y"} {
		_, _, ok := ParseChannelID(bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}
