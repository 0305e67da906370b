// internal/profile/handlers.go
// HTTP handlers for profile, photo, and preference endpoints

package profile

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/heartlinkapp/heartlink-backend/internal/auth"
	"github.com/heartlinkapp/heartlink-backend/internal/authz"
	"github.com/heartlinkapp/heartlink-backend/internal/common/utils"
)

const maxPhotoUploadBytes = 5 << 20 // 5 MB

// Handler handles profile HTTP requests
type Handler struct {
	service Service
	guard   *authz.Guard
}

// NewHandler creates a new profile handler
func NewHandler(service Service, guard *authz.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

// GetMyProfile handles GET /api/v1/profiles/me
func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}

// GetUserProfile handles GET /api/v1/profiles/{userId}
func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.GetUserIDFromContext(r.Context()); !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	targetID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), targetID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/v1/profiles/me.
// The route carries the body sanitizer, so forbidden fields are gone by the
// time the request decodes here.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}

// UploadPhoto handles POST /api/v1/profiles/me/photos
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid upload")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	photo, err := h.service.UploadPhoto(r.Context(), userID, file, header)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusCreated, photo)
}

// ListPhotos handles GET /api/v1/profiles/me/photos
func (h *Handler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	photos, err := h.service.ListPhotos(r.Context(), userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, photos)
}

// DeletePhoto handles DELETE /api/v1/profiles/me/photos/{photoId}.
// The guard confirms ownership; a photo belonging to someone else is
// indistinguishable from one that does not exist.
func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoId"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid photo ID")
		return
	}

	err = h.guard.AuthorizeAccess(r.Context(), userID, authz.AccessRequest{
		Kind:       authz.KindOwnedEntity,
		Entity:     "photo",
		ResourceID: photoID,
	})
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	if err := h.service.DeletePhoto(r.Context(), photoID); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.MessageResponse(w, "photo deleted", http.StatusOK)
}

// GetPreferences handles GET /api/v1/profiles/me/preferences
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	prefs, err := h.service.GetPreferences(r.Context(), userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, prefs)
}

// UpdatePreferences handles PUT /api/v1/profiles/me/preferences
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	prefs, err := h.service.UpdatePreferences(r.Context(), userID, &req)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, prefs)
}
