package relationship

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartlinkapp/heartlink-backend/internal/common/apperrors"
)

// fakeRepo is an in-memory Repository for service and detector tests
type fakeRepo struct {
	mu            sync.Mutex
	likes         map[[2]int64]bool
	dislikes      map[[2]int64]bool
	blocks        map[[2]int64]bool
	failFindLikes bool
	failCreate    bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		likes:    make(map[[2]int64]bool),
		dislikes: make(map[[2]int64]bool),
		blocks:   make(map[[2]int64]bool),
	}
}

func (f *fakeRepo) addLike(sender, receiver int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.likes[[2]int64{sender, receiver}] = true
}

func (f *fakeRepo) CreateLike(_ context.Context, senderID, receiverID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errors.New("connection reset")
	}
	key := [2]int64{senderID, receiverID}
	if f.likes[key] {
		return apperrors.New(apperrors.KindDuplicateRelationship, "already liked")
	}
	f.likes[key] = true
	return nil
}

func (f *fakeRepo) LikeExists(_ context.Context, senderID, receiverID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likes[[2]int64{senderID, receiverID}], nil
}

func (f *fakeRepo) FindLikesBetween(_ context.Context, userA, userB int64) ([]*LikeEdge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFindLikes {
		return nil, errors.New("connection reset")
	}
	var edges []*LikeEdge
	if f.likes[[2]int64{userA, userB}] {
		edges = append(edges, &LikeEdge{SenderID: userA, ReceiverID: userB, CreatedAt: time.Now()})
	}
	if f.likes[[2]int64{userB, userA}] {
		edges = append(edges, &LikeEdge{SenderID: userB, ReceiverID: userA, CreatedAt: time.Now()})
	}
	return edges, nil
}

func (f *fakeRepo) CreateDislike(_ context.Context, senderID, receiverID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{senderID, receiverID}
	if f.dislikes[key] {
		return apperrors.New(apperrors.KindDuplicateRelationship, "already disliked")
	}
	f.dislikes[key] = true
	return nil
}

func (f *fakeRepo) CreateBlock(_ context.Context, senderID, receiverID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{senderID, receiverID}
	if f.blocks[key] {
		return apperrors.New(apperrors.KindDuplicateRelationship, "already blocked")
	}
	f.blocks[key] = true
	return nil
}

func (f *fakeRepo) BlockExistsBetween(_ context.Context, userA, userB int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blocks[[2]int64{userA, userB}] || f.blocks[[2]int64{userB, userA}], nil
}

func (f *fakeRepo) ListMatches(context.Context, int64) ([]*MatchView, error) {
	return nil, nil
}

func (f *fakeRepo) ListLikers(context.Context, int64) ([]*UserSummary, error) {
	return nil, nil
}

func newTestService(repo *fakeRepo) Service {
	return NewService(repo, NewDetector(repo), NopNotifier{})
}

func TestServiceLike(t *testing.T) {
	ctx := context.Background()

	t.Run("first like with no reciprocal edge", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		result, err := svc.Like(ctx, 1, 2)
		require.NoError(t, err)
		assert.False(t, result.Matched)
		assert.False(t, result.AlreadyLiked)
		assert.Empty(t, result.ChannelID)
	})

	t.Run("like completing a reciprocal pair reports the match", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addLike(2, 1)
		svc := newTestService(repo)

		result, err := svc.Like(ctx, 1, 2)
		require.NoError(t, err)
		assert.True(t, result.Matched)
		assert.False(t, result.AlreadyLiked)
		assert.Equal(t, "match_1_2", result.ChannelID)
	})

	t.Run("duplicate like is recovered not failed", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addLike(1, 2)
		svc := newTestService(repo)

		result, err := svc.Like(ctx, 1, 2)
		require.NoError(t, err)
		assert.True(t, result.AlreadyLiked)
		assert.False(t, result.Matched)
	})

	t.Run("duplicate like on an existing match still reports the match", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addLike(1, 2)
		repo.addLike(2, 1)
		svc := newTestService(repo)

		result, err := svc.Like(ctx, 1, 2)
		require.NoError(t, err)
		assert.True(t, result.AlreadyLiked)
		assert.True(t, result.Matched)
		assert.Equal(t, "match_1_2", result.ChannelID)
	})

	t.Run("liking yourself is malformed", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		_, err := svc.Like(ctx, 5, 5)
		assert.True(t, apperrors.IsKind(err, apperrors.KindMalformedRequest))
	})

	t.Run("blocked pair is masked as not found", func(t *testing.T) {
		repo := newFakeRepo()
		repo.blocks[[2]int64{2, 1}] = true
		svc := newTestService(repo)

		_, err := svc.Like(ctx, 1, 2)
		assert.True(t, apperrors.IsKind(err, apperrors.KindResourceNotFound))
	})

	t.Run("storage failure surfaces as an error", func(t *testing.T) {
		repo := newFakeRepo()
		repo.failCreate = true
		svc := newTestService(repo)

		_, err := svc.Like(ctx, 1, 2)
		assert.Error(t, err)
	})
}

func TestServiceDislike(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())

	require.NoError(t, svc.Dislike(ctx, 1, 2))

	// Duplicate pass is a silent no-op
	require.NoError(t, svc.Dislike(ctx, 1, 2))

	err := svc.Dislike(ctx, 3, 3)
	assert.True(t, apperrors.IsKind(err, apperrors.KindMalformedRequest))
}

func TestServiceBlock(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	require.NoError(t, svc.Block(ctx, 1, 2))
	require.NoError(t, svc.Block(ctx, 1, 2))

	// Blocks apply in both directions
	blocked, err := repo.BlockExistsBetween(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, blocked)

	err = svc.Block(ctx, 4, 4)
	assert.True(t, apperrors.IsKind(err, apperrors.KindMalformedRequest))
}

func TestServiceCheckMatch(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addLike(1, 2)
	repo.addLike(2, 1)
	svc := newTestService(repo)

	matched, err := svc.CheckMatch(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = svc.CheckMatch(ctx, 1, 3)
	require.NoError(t, err)
	assert.False(t, matched)
}
