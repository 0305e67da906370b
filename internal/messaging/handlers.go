// internal/messaging/handlers.go

package messaging

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/heartlinkapp/heartlink-backend/internal/auth"
	"github.com/heartlinkapp/heartlink-backend/internal/common/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Mobile clients connect from app webviews; origin checks happen at
	// the token layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler handles messaging HTTP requests
type Handler struct {
	tokens TokenService
	hub    *Hub
}

// NewHandler creates a new messaging handler
func NewHandler(tokens TokenService, hub *Hub) *Handler {
	return &Handler{tokens: tokens, hub: hub}
}

// GetChannelToken handles GET /api/v1/messaging/token/{userId}.
// Credentials are only issued to participants of an existing match.
func (h *Handler) GetChannelToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	otherID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	creds, err := h.tokens.IssueChannelToken(r.Context(), userID, otherID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, creds)
}

// ServeWS handles GET /api/v1/messaging/ws and upgrades to a websocket
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	client := NewClient(h.hub, conn, userID)
	h.hub.register <- client
	client.Start()
}
