package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	recipients map[int64]*Recipient
}

func (f *fakeDirectory) GetRecipient(_ context.Context, userID int64) (*Recipient, error) {
	r, ok := f.recipients[userID]
	if !ok {
		return nil, assert.AnError
	}
	return r, nil
}

type recordingEmail struct {
	sent []string // recipient addresses
}

func (r *recordingEmail) Send(_ context.Context, to, _, _ string) error {
	r.sent = append(r.sent, to)
	return nil
}

type recordingSink struct {
	matches [][2]int64
	channel string
	likes   []int64
}

func (r *recordingSink) MatchFormed(a, b int64, channelID string) {
	r.matches = append(r.matches, [2]int64{a, b})
	r.channel = channelID
}

func (r *recordingSink) LikeReceived(receiverID int64) {
	r.likes = append(r.likes, receiverID)
}

func testDirectory() *fakeDirectory {
	ada := "ada@example.com"
	return &fakeDirectory{recipients: map[int64]*Recipient{
		1: {ID: 1, Username: "ada", Email: &ada},
		2: {ID: 2, Username: "grace"}, // no email on file
	}}
}

func TestNotifyMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("pushes the channel to both users and emails those reachable", func(t *testing.T) {
		email := &recordingEmail{}
		sink := &recordingSink{}
		n := NewNotifier(testDirectory(), email, MockSMSService{}, sink, Config{EnableEmail: true})

		n.NotifyMatch(ctx, 1, 2)

		require.Len(t, sink.matches, 1)
		assert.Equal(t, "match_1_2", sink.channel)
		assert.Equal(t, []string{"ada@example.com"}, email.sent)
	})

	t.Run("email channel can be disabled", func(t *testing.T) {
		email := &recordingEmail{}
		sink := &recordingSink{}
		n := NewNotifier(testDirectory(), email, MockSMSService{}, sink, Config{})

		n.NotifyMatch(ctx, 1, 2)

		assert.Empty(t, email.sent)
		assert.Len(t, sink.matches, 1, "realtime push is independent of email")
	})

	t.Run("unresolvable recipient drops delivery without panicking", func(t *testing.T) {
		email := &recordingEmail{}
		n := NewNotifier(testDirectory(), email, MockSMSService{}, nil, Config{EnableEmail: true})

		n.NotifyMatch(ctx, 1, 99)

		assert.Empty(t, email.sent)
	})
}

func TestNotifyLike(t *testing.T) {
	ctx := context.Background()

	t.Run("notifies the receiver only", func(t *testing.T) {
		email := &recordingEmail{}
		sink := &recordingSink{}
		n := NewNotifier(testDirectory(), email, MockSMSService{}, sink, Config{EnableEmail: true})

		n.NotifyLike(ctx, 2, 1)

		assert.Equal(t, []int64{1}, sink.likes)
		assert.Equal(t, []string{"ada@example.com"}, email.sent)
	})

	t.Run("receiver without email still gets the realtime push", func(t *testing.T) {
		email := &recordingEmail{}
		sink := &recordingSink{}
		n := NewNotifier(testDirectory(), email, MockSMSService{}, sink, Config{EnableEmail: true})

		n.NotifyLike(ctx, 1, 2)

		assert.Equal(t, []int64{2}, sink.likes)
		assert.Empty(t, email.sent)
	})
}
