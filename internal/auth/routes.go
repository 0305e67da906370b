package auth

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes wires auth endpoints into the router
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *Middleware) {
	api := router.PathPrefix("/api/v1/auth").Subrouter()

	// Public
	api.HandleFunc("/signup", handler.Signup).Methods("POST")
	api.HandleFunc("/signin", handler.Signin).Methods("POST")
	api.HandleFunc("/google", handler.GoogleAuth).Methods("POST")
	api.HandleFunc("/refresh", handler.RefreshToken).Methods("POST")

	// Protected
	protected := router.PathPrefix("/api/v1/auth").Subrouter()
	protected.Use(authMiddleware.Authenticate)
	protected.HandleFunc("/logout", handler.Logout).Methods("POST")
	protected.HandleFunc("/logout-all", handler.LogoutAllDevices).Methods("POST")
	protected.HandleFunc("/account", handler.DeleteAccount).Methods("DELETE")
	protected.HandleFunc("/me", handler.Me).Methods("GET")
}
