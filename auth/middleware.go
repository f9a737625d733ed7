package auth

import (
	"context"
	"net/http"
	"strings"

	"music-lab/contract"

	"github.com/google/uuid"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Middleware validates the Authorization header for REST endpoints and
// injects the authenticated user id into the request context.
// The SSE endpoint does its own query-parameter validation instead, because
// EventSource cannot attach headers.
func Middleware(tokens contract.ITokenValidator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "authorization token is missing", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		userID, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext retrieves the authenticated user injected by Middleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}
