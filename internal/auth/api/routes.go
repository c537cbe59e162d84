package api

import (
	"net/http"

	"drivelog/internal/shared/middleware"
)

// RegisterRoutes mounts the auth endpoints on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, jwtSecret []byte) {
	auth := middleware.Auth(jwtSecret)

	mux.HandleFunc("POST /auth/register", h.RegisterHandler)
	mux.HandleFunc("POST /auth/login", h.LoginHandler)
	mux.Handle("GET /users/me", auth(http.HandlerFunc(h.GetProfileHandler)))
	mux.Handle("PUT /users/me", auth(http.HandlerFunc(h.UpdateProfileHandler)))
	mux.Handle("PATCH /users/me", auth(http.HandlerFunc(h.UpdateProfileHandler)))
}
