package api

import (
	"net/http"

	"drivelog/internal/shared/middleware"
)

// RegisterRoutes mounts the drive-session endpoints on the given mux. All
// routes require authentication.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, jwtSecret []byte) {
	auth := middleware.Auth(jwtSecret)

	mux.Handle("POST /sessions", auth(http.HandlerFunc(h.StartSessionHandler)))
	mux.Handle("GET /sessions", auth(http.HandlerFunc(h.ListSessionsHandler)))
	mux.Handle("GET /sessions/export", auth(http.HandlerFunc(h.ExportHandler)))
	mux.Handle("PUT /sessions/{id}", auth(http.HandlerFunc(h.UpdateSessionHandler)))
	mux.Handle("DELETE /sessions/{id}", auth(http.HandlerFunc(h.DeleteSessionHandler)))
	mux.Handle("POST /sessions/{id}/complete", auth(http.HandlerFunc(h.CompleteSessionHandler)))
	mux.Handle("GET /dashboard", auth(http.HandlerFunc(h.DashboardHandler)))
	mux.Handle("GET /activity", auth(http.HandlerFunc(h.CalendarHandler)))
	mux.Handle("GET /ws/dashboard", auth(http.HandlerFunc(h.ws.DashboardWSHandler)))
}
