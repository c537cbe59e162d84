package middleware

import (
	"context"
	"net/http"
	"strings"

	"drivelog/internal/shared/jwt"
	"drivelog/internal/shared/util"
)

const UserIDKey contextKey = "user_id"

// Auth validates the Bearer token and injects the authenticated user ID into
// the request context.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				util.WriteJSONError(w, "missing or malformed Authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := jwt.ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				util.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user ID from the context.
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}
