package presence

import (
	"github.com/gorilla/mux"

	"github.com/heartlinkapp/heartlink-backend/internal/auth"
)

// RegisterRoutes wires presence endpoints into the router
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/presence").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/heartbeat", handler.Heartbeat).Methods("POST")
	api.HandleFunc("/batch", handler.GetStatusBatch).Methods("GET")
	api.HandleFunc("/{userId}", handler.GetStatus).Methods("GET")
}
