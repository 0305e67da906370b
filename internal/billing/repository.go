// internal/billing/repository.go

package billing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/heartlinkapp/heartlink-backend/internal/common/apperrors"
)

// Repository defines subscription data operations
type Repository interface {
	GetSubscription(ctx context.Context, userID int64) (*Subscription, error)
	UpsertSubscription(ctx context.Context, sub *Subscription) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new billing repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetSubscription(ctx context.Context, userID int64) (*Subscription, error) {
	var sub Subscription
	query := `
		SELECT id, user_id, tier, status, provider, provider_ref,
		       current_period_end, created_at, updated_at
		FROM subscriptions
		WHERE user_id = $1`

	err := r.db.GetContext(ctx, &sub, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.New(apperrors.KindResourceNotFound, "subscription not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &sub, nil
}

func (r *postgresRepository) UpsertSubscription(ctx context.Context, sub *Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, tier, status, provider, provider_ref, current_period_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			tier = EXCLUDED.tier,
			status = EXCLUDED.status,
			provider = EXCLUDED.provider,
			provider_ref = EXCLUDED.provider_ref,
			current_period_end = EXCLUDED.current_period_end,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		sub.UserID, sub.Tier, sub.Status, sub.Provider, sub.ProviderRef, sub.CurrentPeriodEnd,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	return nil
}
