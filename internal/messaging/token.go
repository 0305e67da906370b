// internal/messaging/token.go
// Chat channel credentials. Message storage and delivery belong to the
// external chat provider; we only hand out a channel key plus a signed
// token once the caller is confirmed to be a participant of the match.

package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/heartlinkapp/heartlink-backend/internal/authz"
	"github.com/heartlinkapp/heartlink-backend/internal/relationship"
)

// ChatCredentials grants access to one match channel
type ChatCredentials struct {
	ChannelID string    `json:"channel_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenService issues chat credentials for matched pairs
type TokenService interface {
	IssueChannelToken(ctx context.Context, userID, otherID int64) (*ChatCredentials, error)
}

type tokenService struct {
	guard  *authz.Guard
	secret []byte
	expiry time.Duration
}

// NewTokenService creates a chat token service
func NewTokenService(guard *authz.Guard, secret string, expiry time.Duration) TokenService {
	return &tokenService{
		guard:  guard,
		secret: []byte(secret),
		expiry: expiry,
	}
}

func (s *tokenService) IssueChannelToken(ctx context.Context, userID, otherID int64) (*ChatCredentials, error) {
	err := s.guard.AuthorizeAccess(ctx, userID, authz.AccessRequest{
		Kind:       authz.KindMatchParticipant,
		ResourceID: otherID,
	})
	if err != nil {
		return nil, err
	}

	channelID := relationship.ChannelID(userID, otherID)
	expiresAt := time.Now().Add(s.expiry)

	claims := jwt.MapClaims{
		"sub":     fmt.Sprintf("%d", userID),
		"channel": channelID,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign chat token: %w", err)
	}

	return &ChatCredentials{
		ChannelID: channelID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
