package relationship

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartlinkapp/heartlink-backend/internal/auth"
)

type fakePremium struct {
	premium bool
	err     error
}

func (f *fakePremium) IsPremium(context.Context, int64) (bool, error) {
	return f.premium, f.err
}

func likersRequest() *http.Request {
	req := httptest.NewRequest("GET", "/api/v1/relationships/likers", nil)
	return req.WithContext(auth.WithIdentity(req.Context(), 7, "ada@example.com"))
}

func TestGetLikersPremiumGate(t *testing.T) {
	t.Run("premium user gets the list", func(t *testing.T) {
		handler := NewHandler(newTestService(newFakeRepo()), &fakePremium{premium: true})

		recorder := httptest.NewRecorder()
		handler.GetLikers(recorder, likersRequest())

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("free user is refused", func(t *testing.T) {
		handler := NewHandler(newTestService(newFakeRepo()), &fakePremium{})

		recorder := httptest.NewRecorder()
		handler.GetLikers(recorder, likersRequest())

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "premium subscription required")
	})

	t.Run("billing failure does not grant access", func(t *testing.T) {
		handler := NewHandler(newTestService(newFakeRepo()), &fakePremium{err: errors.New("connection reset")})

		recorder := httptest.NewRecorder()
		handler.GetLikers(recorder, likersRequest())

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		handler := NewHandler(newTestService(newFakeRepo()), &fakePremium{premium: true})

		recorder := httptest.NewRecorder()
		handler.GetLikers(recorder, httptest.NewRequest("GET", "/api/v1/relationships/likers", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
