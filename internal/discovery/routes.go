package discovery

import (
	"github.com/gorilla/mux"

	"github.com/heartlinkapp/heartlink-backend/internal/auth"
)

// RegisterRoutes wires discovery endpoints into the router
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/discovery").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.GetCandidates).Methods("GET")
}
