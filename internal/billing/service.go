// internal/billing/service.go
// Subscription state and the premium check used to gate paid features.
// Any error while reading subscription state reports the user as not
// premium rather than granting access.

package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/heartlinkapp/heartlink-backend/internal/common/apperrors"
	"github.com/heartlinkapp/heartlink-backend/internal/common/utils"
)

// Service defines billing business logic
type Service interface {
	GetSubscription(ctx context.Context, userID int64) (*Subscription, error)
	ApplyProviderEvent(ctx context.Context, event *ProviderEvent) (*Subscription, error)
	IsPremium(ctx context.Context, userID int64) (bool, error)
}

type service struct {
	repo Repository
}

// NewService creates a new billing service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetSubscription returns the user's subscription, defaulting to the free
// tier when none exists.
func (s *service) GetSubscription(ctx context.Context, userID int64) (*Subscription, error) {
	sub, err := s.repo.GetSubscription(ctx, userID)
	if apperrors.IsKind(err, apperrors.KindResourceNotFound) {
		return &Subscription{
			UserID: userID,
			Tier:   TierFree,
			Status: SubscriptionActive,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// ApplyProviderEvent records a subscription change pushed by the payment
// provider.
func (s *service) ApplyProviderEvent(ctx context.Context, event *ProviderEvent) (*Subscription, error) {
	if err := utils.ValidateStruct(event); err != nil {
		return nil, apperrors.New(apperrors.KindMalformedRequest, err.Error())
	}

	sub := &Subscription{
		UserID:           event.UserID,
		Tier:             event.Tier,
		Status:           event.Status,
		Provider:         event.Provider,
		CurrentPeriodEnd: time.Unix(event.PeriodEnd, 0),
	}
	if event.ProviderRef != "" {
		sub.ProviderRef = &event.ProviderRef
	}

	if err := s.repo.UpsertSubscription(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to apply provider event: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": sub.UserID,
		"tier":    sub.Tier,
		"status":  sub.Status,
	}).Info("Subscription updated")

	return sub, nil
}

// IsPremium reports whether the user currently holds an active premium
// subscription.
func (s *service) IsPremium(ctx context.Context, userID int64) (bool, error) {
	sub, err := s.repo.GetSubscription(ctx, userID)
	if apperrors.IsKind(err, apperrors.KindResourceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return sub.Tier == TierPremium && sub.IsCurrent(time.Now()), nil
}
