// internal/discovery/handlers.go

package discovery

import (
	"net/http"
	"strconv"

	"github.com/heartlinkapp/heartlink-backend/internal/auth"
	"github.com/heartlinkapp/heartlink-backend/internal/common/utils"
)

// Handler handles discovery HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates a new discovery handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetCandidates handles GET /api/v1/discovery
func (h *Handler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	candidates, err := h.service.GetCandidates(r.Context(), userID, limit, offset)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, candidates)
}
