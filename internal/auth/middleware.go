// internal/auth/middleware.go
// The authorization gate. Every protected route goes through Authenticate,
// which resolves the caller's identity, loads the account record, and refuses
// anything that is not an active account. Exactly one outcome occurs per
// request: a single rejection, or a forward with the resolved identity in
// the context. Any ambiguity fails closed.

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/heartlinkapp/heartlink-backend/internal/common/apperrors"
	"github.com/heartlinkapp/heartlink-backend/internal/common/utils"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	emailKey  contextKey = "email"
)

// Middleware provides authentication middleware
type Middleware struct {
	service Service
}

// NewMiddleware creates a new auth middleware
func NewMiddleware(service Service) *Middleware {
	return &Middleware{service: service}
}

// Authenticate verifies the access token, loads the account, and rejects
// non-active accounts before any downstream handler runs.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		claims, err := m.service.ValidateToken(r.Context(), token)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		if claims.Type != "access" {
			utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		// A valid token is not enough: the account record is the source of
		// truth for lifecycle status, so it is loaded on every request.
		user, err := m.service.GetUserByID(r.Context(), claims.UserID)
		if err != nil {
			if apperrors.IsKind(err, apperrors.KindAccountNotFound) {
				utils.RespondWithError(w, http.StatusNotFound, "user not found")
				return
			}
			utils.RespondWithAppError(w, apperrors.Internal(err))
			return
		}

		switch user.Status {
		case StatusActive:
			// fall through to the success path
		case StatusBanned:
			utils.RespondWithError(w, http.StatusForbidden, "account banned")
			return
		case StatusDeleted:
			utils.RespondWithError(w, http.StatusForbidden, "account deleted")
			return
		case StatusSuspended:
			utils.RespondWithError(w, http.StatusForbidden, "account suspended")
			return
		default:
			utils.RespondWithError(w, http.StatusForbidden, "account not available")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, user.ID)
		ctx = context.WithValue(ctx, emailKey, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken pulls the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// Helper functions for handlers to get the resolved identity from context

// GetUserIDFromContext extracts the authenticated user ID from the request context
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetEmailFromContext extracts the authenticated email from the request context
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

// WithIdentity returns a context carrying a resolved identity. Intended for
// tests and internal dispatch, not for bypassing the gate.
func WithIdentity(ctx context.Context, userID int64, email string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, emailKey, email)
}
