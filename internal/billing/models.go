package billing

import "time"

// Subscription tiers
const (
	TierFree    = "free"
	TierPremium = "premium"
)

// Subscription statuses
const (
	SubscriptionActive   = "active"
	SubscriptionExpired  = "expired"
	SubscriptionCanceled = "canceled"
)

// Subscription represents a user's paid plan
type Subscription struct {
	ID               int64     `json:"id" db:"id"`
	UserID           int64     `json:"user_id" db:"user_id"`
	Tier             string    `json:"tier" db:"tier"`
	Status           string    `json:"status" db:"status"`
	Provider         string    `json:"provider" db:"provider"`
	ProviderRef      *string   `json:"-" db:"provider_ref"`
	CurrentPeriodEnd time.Time `json:"current_period_end" db:"current_period_end"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// IsCurrent reports whether the subscription grants access right now
func (s *Subscription) IsCurrent(now time.Time) bool {
	return s.Status == SubscriptionActive && s.CurrentPeriodEnd.After(now)
}

// ProviderEvent is the payload delivered by the payment provider webhook
type ProviderEvent struct {
	UserID      int64  `json:"user_id" validate:"required,gt=0"`
	Tier        string `json:"tier" validate:"required,oneof=free premium"`
	Status      string `json:"status" validate:"required,oneof=active expired canceled"`
	Provider    string `json:"provider" validate:"required"`
	ProviderRef string `json:"provider_ref"`
	PeriodEnd   int64  `json:"period_end" validate:"required,gt=0"`
}
