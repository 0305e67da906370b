// internal/billing/handlers.go

package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/heartlinkapp/heartlink-backend/internal/auth"
	"github.com/heartlinkapp/heartlink-backend/internal/common/utils"
)

const maxWebhookBytes = 64 << 10

// Handler handles billing HTTP requests
type Handler struct {
	service       Service
	webhookSecret string
}

// NewHandler creates a new billing handler
func NewHandler(service Service, webhookSecret string) *Handler {
	return &Handler{service: service, webhookSecret: webhookSecret}
}

// GetSubscription handles GET /api/v1/billing/subscription
func (h *Handler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	sub, err := h.service.GetSubscription(r.Context(), userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, sub)
}

// ProviderWebhook handles POST /api/v1/billing/webhook. The payment provider
// signs the raw body with HMAC-SHA256 and sends the hex digest in
// X-Webhook-Signature.
func (h *Handler) ProviderWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if !h.verifySignature(body, r.Header.Get("X-Webhook-Signature")) {
		logrus.Warn("Billing webhook signature mismatch")
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	var event ProviderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.service.ApplyProviderEvent(r.Context(), &event)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, sub)
}

func (h *Handler) verifySignature(body []byte, signature string) bool {
	if h.webhookSecret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
