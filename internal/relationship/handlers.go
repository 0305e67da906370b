// internal/relationship/handlers.go
// HTTP handlers for likes, dislikes, blocks, and match views

package relationship

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/heartlinkapp/heartlink-backend/internal/auth"
	"github.com/heartlinkapp/heartlink-backend/internal/common/utils"
)

// PremiumChecker gates premium-only views like the liker list.
// Implemented by the billing service.
type PremiumChecker interface {
	IsPremium(ctx context.Context, userID int64) (bool, error)
}

// Handler handles relationship HTTP requests
type Handler struct {
	service Service
	premium PremiumChecker
}

// NewHandler creates a new relationship handler
func NewHandler(service Service, premium PremiumChecker) *Handler {
	return &Handler{service: service, premium: premium}
}

// Like handles POST /api/v1/relationships/like/{userId}
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	targetID, err := pathUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	result, err := h.service.Like(r.Context(), userID, targetID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, result)
}

// Dislike handles POST /api/v1/relationships/dislike/{userId}
func (h *Handler) Dislike(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	targetID, err := pathUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	if err := h.service.Dislike(r.Context(), userID, targetID); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.MessageResponse(w, "passed", http.StatusOK)
}

// Block handles POST /api/v1/relationships/block/{userId}
func (h *Handler) Block(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	targetID, err := pathUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	if err := h.service.Block(r.Context(), userID, targetID); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.MessageResponse(w, "blocked", http.StatusOK)
}

// GetMatches handles GET /api/v1/relationships/matches
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	matches, err := h.service.ListMatches(r.Context(), userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, matches)
}

// CheckMatch handles GET /api/v1/relationships/matches/check/{userId}
func (h *Handler) CheckMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	targetID, err := pathUserID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	matched, err := h.service.CheckMatch(r.Context(), userID, targetID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]bool{"matched": matched})
}

// GetLikers handles GET /api/v1/relationships/likers.
// Seeing who liked you before swiping is a premium feature.
func (h *Handler) GetLikers(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	premium, err := h.premium.IsPremium(r.Context(), userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if !premium {
		utils.RespondWithError(w, http.StatusForbidden, "premium subscription required")
		return
	}

	likers, err := h.service.ListLikers(r.Context(), userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, likers)
}

func pathUserID(r *http.Request) (int64, error) {
	vars := mux.Vars(r)
	return strconv.ParseInt(vars["userId"], 10, 64)
}
