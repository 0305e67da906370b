// internal/auth/models.go
// Data structures for accounts, sessions, and auth requests.

package auth

import (
	"time"
)

// Account lifecycle statuses. An account row is never removed on
// self-deletion; the status moves to "deleted" instead, and the
// authorization gate refuses anything that is not active.
const (
	StatusActive    = "active"
	StatusBanned    = "banned"
	StatusDeleted   = "deleted"
	StatusSuspended = "suspended"
)

// User represents an account in our system
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        *string   `json:"email" db:"email"`         // nullable for phone-only users
	PhoneNumber  *string   `json:"phone_number,omitempty" db:"phone_number"`
	Username     string    `json:"username" db:"username"`
	PasswordHash *string   `json:"-" db:"password_hash"`     // nullable for federated-login-only users
	Provider     string    `json:"provider" db:"provider"`   // "local" or "google"
	ProviderID   *string   `json:"provider_id,omitempty" db:"provider_id"`
	Status       string    `json:"status" db:"status"`
	IsVerified   bool      `json:"is_verified" db:"is_verified"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Session represents an active user session.
// Stored in the database for multi-device support and revocation.
type Session struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	Token        string    `json:"token" db:"token"`
	RefreshToken string    `json:"refresh_token" db:"refresh_token"`
	DeviceInfo   *string   `json:"device_info" db:"device_info"`
	IPAddress    *string   `json:"ip_address" db:"ip_address"`
	ExpiresAt    time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// SignupRequest is what the client sends to create an account
type SignupRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Username        string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Password        string `json:"password" validate:"required,min=8,max=100"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	AcceptTerms     bool   `json:"accept_terms" validate:"required"`
}

// SigninRequest handles email login
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleAuthRequest for federated signin/signup
type GoogleAuthRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// RefreshTokenRequest to obtain a new access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse is returned on successful authentication
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
