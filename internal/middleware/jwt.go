package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/bryokn/ClassiConnect/internal/entity"
)

// TokenResolver verifies a bearer token and resolves it to an account.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*entity.User, error)
}

// JWTAuth rejects requests without a valid Bearer token and stores the
// resolved identity in the request context.
func JWTAuth(resolver TokenResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "Authorization header with Bearer token is required", http.StatusUnauthorized)
				return
			}

			user, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				logger.Debug("Token resolution failed", zap.Error(err))
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, user.ID)
			ctx = context.WithValue(ctx, UsernameCtxKey, user.Username)
			ctx = context.WithValue(ctx, UserRoleCtxKey, string(user.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id, or "" when the
// request did not pass through JWTAuth.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(UserIDCtxKey).(string)
	return id
}

// UsernameFromContext returns the authenticated username, or "".
func UsernameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(UsernameCtxKey).(string)
	return name
}
