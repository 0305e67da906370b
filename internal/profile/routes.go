package profile

import (
	"github.com/go-chi/chi/v5"

	"github.com/heartlinkapp/heartlink-backend/internal/auth"
	"github.com/heartlinkapp/heartlink-backend/internal/authz"
)

// RegisterRoutes registers all profile routes on a chi router, which the
// caller mounts under /api/v1/profiles. Mutating JSON routes pass through
// the body sanitizer.
func RegisterRoutes(r chi.Router, handler *Handler, authMiddleware *auth.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Use(authz.SanitizeBody(authz.ForbiddenProfileFields))

		r.Get("/api/v1/profiles/me", handler.GetMyProfile)
		r.Put("/api/v1/profiles/me", handler.UpdateProfile)
		r.Get("/api/v1/profiles/me/photos", handler.ListPhotos)
		r.Post("/api/v1/profiles/me/photos", handler.UploadPhoto)
		r.Delete("/api/v1/profiles/me/photos/{photoId}", handler.DeletePhoto)
		r.Get("/api/v1/profiles/me/preferences", handler.GetPreferences)
		r.Put("/api/v1/profiles/me/preferences", handler.UpdatePreferences)
		r.Get("/api/v1/profiles/{userId}", handler.GetUserProfile)
	})
}
