// internal/api/middleware/auth.go
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"exptr-api/internal/service"
)

type contextKey string

const (
	userIDKey       contextKey = "user_id"
	sessionTokenKey contextKey = "session_token"
)

// Authenticator rejects requests without a live session. On success, the
// session's user id and bearer token are placed into the request context.
func Authenticator(users service.UserService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			sessionToken, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || sessionToken == "" {
				http.Error(w, "malformed authorization header", http.StatusUnauthorized)
				return
			}

			session, err := users.Authenticate(r.Context(), sessionToken)
			if err != nil {
				logger.Info("rejected bearer token", "error", err)
				http.Error(w, "invalid or expired session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, session.UserID)
			ctx = context.WithValue(ctx, sessionTokenKey, sessionToken)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUser returns a context carrying an authenticated identity, the same
// shape Authenticator produces. Handler tests use it to skip the middleware.
func WithUser(ctx context.Context, userID int64, sessionToken string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, sessionTokenKey, sessionToken)
}

// UserID extracts the authenticated user's id from the request context.
// The second return value is false outside an authenticated route.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// SessionToken extracts the bearer token the request authenticated with.
func SessionToken(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(sessionTokenKey).(string)
	return t, ok
}
