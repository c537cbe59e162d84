package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"drivelog/internal/shared/util"
)

func TestProfileRouteMethodDispatch(t *testing.T) {
	handler := NewHandler(nil, util.New())
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, []byte("test-secret"))

	tests := []struct {
		name       string
		method     string
		wantStatus int
	}{
		// Unauthenticated requests stop at the middleware.
		{name: "GET without token", method: http.MethodGet, wantStatus: http.StatusUnauthorized},
		{name: "PUT without token", method: http.MethodPut, wantStatus: http.StatusUnauthorized},
		{name: "PATCH without token", method: http.MethodPatch, wantStatus: http.StatusUnauthorized},
		// Methods outside the registered patterns never match a route.
		{name: "DELETE not registered", method: http.MethodDelete, wantStatus: http.StatusMethodNotAllowed},
		{name: "POST not registered", method: http.MethodPost, wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/users/me", nil)
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("%s /users/me = %d, want %d", tt.method, rec.Code, tt.wantStatus)
			}
		})
	}
}
