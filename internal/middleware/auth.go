package middleware

import (
	"context"
	"net/http"
	"strings"

	"app/internal/util"

	"github.com/rs/zerolog"
)

// contextKey avoids collisions with other packages' context values.
type contextKey string

// InstructorContextKey holds the authenticated instructor's code.
const InstructorContextKey = contextKey("instructor")

// AuthMiddleware validates the bearer session token and stores the
// instructor code in the request context.
func AuthMiddleware(jwtSecret string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized: missing authorization header", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized: malformed authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := util.ValidateSessionToken(parts[1], jwtSecret)
			if err != nil {
				logger.Warn().Err(err).Msg("Session token rejected")
				http.Error(w, "Unauthorized: invalid or expired session", http.StatusUnauthorized)
				return
			}
			if claims.Subject == "" {
				logger.Warn().Msg("Session token carries no instructor code")
				http.Error(w, "Unauthorized: invalid or expired session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), InstructorContextKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
