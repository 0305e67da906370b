package profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartlinkapp/heartlink-backend/internal/auth"
	"github.com/heartlinkapp/heartlink-backend/internal/authz"
)

type fakeMatches struct{}

func (fakeMatches) IsMatch(context.Context, int64, int64) (bool, error) { return false, nil }

// newTestRouter mirrors the chi routes the package registers, with the
// caller's identity injected in place of the auth middleware.
func newTestRouter(repo *fakeRepo, callerID int64) http.Handler {
	guard := authz.NewGuard(fakeMatches{}, authz.NewSecurityLogger(logrus.New()))
	guard.RegisterOwner("photo", NewPhotoOwners(repo))
	handler := NewHandler(newTestService(repo), guard)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := auth.WithIdentity(req.Context(), callerID, "ada@example.com")
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Delete("/api/v1/profiles/me/photos/{photoId}", handler.DeletePhoto)
	r.Get("/api/v1/profiles/{userId}", handler.GetUserProfile)
	return r
}

func TestProfileRoutes(t *testing.T) {
	t.Run("profile lookup resolves the path parameter", func(t *testing.T) {
		repo := newFakeRepo()
		repo.profiles[9] = &Profile{UserID: 9, DisplayName: "Grace", CreatedAt: time.Now(), UpdatedAt: time.Now()}
		router := newTestRouter(repo, 7)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/profiles/9", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Grace")
	})

	t.Run("non-numeric user id is rejected", func(t *testing.T) {
		router := newTestRouter(newFakeRepo(), 7)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/profiles/grace", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("owner deletes their photo", func(t *testing.T) {
		repo := newFakeRepo()
		repo.photos[3] = &Photo{ID: 3, UserID: 7, URL: "https://cdn.example.com/photos/a.jpg"}
		router := newTestRouter(repo, 7)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/v1/profiles/me/photos/3", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, repo.photos, int64(3))
	})

	t.Run("deleting someone else's photo reads as not found", func(t *testing.T) {
		repo := newFakeRepo()
		repo.photos[3] = &Photo{ID: 3, UserID: 8, URL: "https://cdn.example.com/photos/a.jpg"}
		router := newTestRouter(repo, 7)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/v1/profiles/me/photos/3", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, repo.photos, int64(3))
	})
}
