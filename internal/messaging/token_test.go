package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartlinkapp/heartlink-backend/internal/authz"
	"github.com/heartlinkapp/heartlink-backend/internal/common/apperrors"
)

type fakeMatches struct {
	pairs map[[2]int64]bool
}

func (f *fakeMatches) IsMatch(_ context.Context, a, b int64) (bool, error) {
	return f.pairs[[2]int64{a, b}] || f.pairs[[2]int64{b, a}], nil
}

func TestIssueChannelToken(t *testing.T) {
	ctx := context.Background()
	secret := "test-secret"

	newService := func(pairs map[[2]int64]bool) TokenService {
		guard := authz.NewGuard(&fakeMatches{pairs: pairs}, authz.NopSecurityLogger{})
		return NewTokenService(guard, secret, time.Hour)
	}

	t.Run("matched pair receives channel credentials", func(t *testing.T) {
		svc := newService(map[[2]int64]bool{{1, 2}: true})

		creds, err := svc.IssueChannelToken(ctx, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, "match_1_2", creds.ChannelID)
		assert.WithinDuration(t, time.Now().Add(time.Hour), creds.ExpiresAt, time.Minute)

		token, err := jwt.Parse(creds.Token, func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		require.NoError(t, err)

		claims, ok := token.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, "match_1_2", claims["channel"])
		assert.Equal(t, "2", claims["sub"])
	})

	t.Run("unmatched pair is denied", func(t *testing.T) {
		svc := newService(nil)

		_, err := svc.IssueChannelToken(ctx, 1, 3)
		assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))
	})

	t.Run("missing peer ID is malformed", func(t *testing.T) {
		svc := newService(nil)

		_, err := svc.IssueChannelToken(ctx, 1, 0)
		assert.True(t, apperrors.IsKind(err, apperrors.KindMalformedRequest))
	})
}
