package billing

import (
	"github.com/gorilla/mux"

	"github.com/heartlinkapp/heartlink-backend/internal/auth"
)

// RegisterRoutes wires billing endpoints into the router
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	// Webhook is authenticated by signature, not by user session
	router.HandleFunc("/api/v1/billing/webhook", handler.ProviderWebhook).Methods("POST")

	api := router.PathPrefix("/api/v1/billing").Subrouter()
	api.Use(authMiddleware.Authenticate)
	api.HandleFunc("/subscription", handler.GetSubscription).Methods("GET")
}
