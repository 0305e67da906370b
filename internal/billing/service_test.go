package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartlinkapp/heartlink-backend/internal/common/apperrors"
)

type fakeRepo struct {
	subs map[int64]*Subscription
	err  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{subs: make(map[int64]*Subscription)}
}

func (f *fakeRepo) GetSubscription(_ context.Context, userID int64) (*Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	sub, ok := f.subs[userID]
	if !ok {
		return nil, apperrors.New(apperrors.KindResourceNotFound, "subscription not found")
	}
	return sub, nil
}

func (f *fakeRepo) UpsertSubscription(_ context.Context, sub *Subscription) error {
	if f.err != nil {
		return f.err
	}
	sub.ID = int64(len(f.subs) + 1)
	f.subs[sub.UserID] = sub
	return nil
}

func TestIsPremium(t *testing.T) {
	ctx := context.Background()

	t.Run("active premium subscription", func(t *testing.T) {
		repo := newFakeRepo()
		repo.subs[7] = &Subscription{
			UserID:           7,
			Tier:             TierPremium,
			Status:           SubscriptionActive,
			CurrentPeriodEnd: time.Now().Add(24 * time.Hour),
		}

		premium, err := NewService(repo).IsPremium(ctx, 7)
		require.NoError(t, err)
		assert.True(t, premium)
	})

	t.Run("expired period is not premium", func(t *testing.T) {
		repo := newFakeRepo()
		repo.subs[7] = &Subscription{
			UserID:           7,
			Tier:             TierPremium,
			Status:           SubscriptionActive,
			CurrentPeriodEnd: time.Now().Add(-time.Hour),
		}

		premium, err := NewService(repo).IsPremium(ctx, 7)
		require.NoError(t, err)
		assert.False(t, premium)
	})

	t.Run("canceled subscription is not premium", func(t *testing.T) {
		repo := newFakeRepo()
		repo.subs[7] = &Subscription{
			UserID:           7,
			Tier:             TierPremium,
			Status:           SubscriptionCanceled,
			CurrentPeriodEnd: time.Now().Add(24 * time.Hour),
		}

		premium, err := NewService(repo).IsPremium(ctx, 7)
		require.NoError(t, err)
		assert.False(t, premium)
	})

	t.Run("no subscription row means free tier", func(t *testing.T) {
		premium, err := NewService(newFakeRepo()).IsPremium(ctx, 7)
		require.NoError(t, err)
		assert.False(t, premium)
	})

	t.Run("storage failure does not grant premium", func(t *testing.T) {
		repo := newFakeRepo()
		repo.err = errors.New("connection reset")

		premium, err := NewService(repo).IsPremium(ctx, 7)
		assert.Error(t, err)
		assert.False(t, premium)
	})
}

func TestGetSubscription(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to free when none exists", func(t *testing.T) {
		sub, err := NewService(newFakeRepo()).GetSubscription(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, TierFree, sub.Tier)
		assert.Equal(t, SubscriptionActive, sub.Status)
	})
}

func TestApplyProviderEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("valid event is stored", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)

		periodEnd := time.Now().Add(30 * 24 * time.Hour).Unix()
		sub, err := svc.ApplyProviderEvent(ctx, &ProviderEvent{
			UserID:    7,
			Tier:      TierPremium,
			Status:    SubscriptionActive,
			Provider:  "stripe",
			PeriodEnd: periodEnd,
		})
		require.NoError(t, err)
		assert.Equal(t, TierPremium, sub.Tier)

		premium, err := svc.IsPremium(ctx, 7)
		require.NoError(t, err)
		assert.True(t, premium)
	})

	t.Run("invalid event is malformed", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		_, err := svc.ApplyProviderEvent(ctx, &ProviderEvent{UserID: 7, Tier: "platinum"})
		assert.True(t, apperrors.IsKind(err, apperrors.KindMalformedRequest))
	})
}
