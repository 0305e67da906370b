package relationship

import (
	"github.com/gorilla/mux"

	"github.com/heartlinkapp/heartlink-backend/internal/auth"
)

// RegisterRoutes wires relationship endpoints into the router
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/relationships").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/like/{userId}", handler.Like).Methods("POST")
	api.HandleFunc("/dislike/{userId}", handler.Dislike).Methods("POST")
	api.HandleFunc("/block/{userId}", handler.Block).Methods("POST")

	api.HandleFunc("/matches", handler.GetMatches).Methods("GET")
	api.HandleFunc("/matches/check/{userId}", handler.CheckMatch).Methods("GET")
	api.HandleFunc("/likers", handler.GetLikers).Methods("GET")
}
