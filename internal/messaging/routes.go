package messaging

import (
	"github.com/gorilla/mux"

	"github.com/heartlinkapp/heartlink-backend/internal/auth"
)

// RegisterRoutes wires messaging endpoints into the router
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/messaging").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/token/{userId}", handler.GetChannelToken).Methods("GET")
	api.HandleFunc("/ws", handler.ServeWS).Methods("GET")
}
