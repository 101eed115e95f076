package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog"
)

// AdminMiddleware guards operator routes with a static token, compared in
// constant time.
func AdminMiddleware(adminToken string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get("X-Admin-Token")
			if provided == "" {
				http.Error(w, "Unauthorized: missing admin token", http.StatusUnauthorized)
				return
			}
			if subtle.ConstantTimeCompare([]byte(provided), []byte(adminToken)) != 1 {
				logger.Warn().Str("path", r.URL.Path).Msg("Admin token rejected")
				http.Error(w, "Unauthorized: invalid admin token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
