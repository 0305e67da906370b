// internal/presence/handlers.go
// Heartbeat and online-status endpoints. Another user's presence is only
// visible to their matches.

package presence

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/heartlinkapp/heartlink-backend/internal/auth"
	"github.com/heartlinkapp/heartlink-backend/internal/authz"
	"github.com/heartlinkapp/heartlink-backend/internal/common/utils"
)

// Handler handles presence HTTP requests
type Handler struct {
	service *Service
	guard   *authz.Guard
}

// NewHandler creates a new presence handler
func NewHandler(service *Service, guard *authz.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

// Heartbeat handles POST /api/v1/presence/heartbeat
func (h *Handler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.service.Touch(r.Context(), userID); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.MessageResponse(w, "ok", http.StatusOK)
}

// GetStatusBatch handles GET /api/v1/presence/batch?ids=1,2,3.
// IDs the caller is not matched with are silently omitted from the result.
func (h *Handler) GetStatusBatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var visible []int64
	for _, raw := range strings.Split(r.URL.Query().Get("ids"), ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			continue
		}
		err = h.guard.AuthorizeAccess(r.Context(), userID, authz.AccessRequest{
			Kind:       authz.KindMatchParticipant,
			ResourceID: id,
		})
		if err == nil {
			visible = append(visible, id)
		}
	}

	statuses, err := h.service.OnlineSet(r.Context(), visible)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, statuses)
}

// GetStatus handles GET /api/v1/presence/{userId}
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	targetID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	err = h.guard.AuthorizeAccess(r.Context(), userID, authz.AccessRequest{
		Kind:       authz.KindMatchParticipant,
		ResourceID: targetID,
	})
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	online, err := h.service.IsOnline(r.Context(), targetID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	lastSeen, seen, err := h.service.LastSeen(r.Context(), targetID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	status := map[string]interface{}{"online": online}
	if seen {
		status["last_seen"] = lastSeen.UTC().Format(time.RFC3339)
	}

	utils.RespondWithData(w, http.StatusOK, status)
}
