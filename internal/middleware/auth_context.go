package middleware

import (
	"net/http"
	"strings"

	"bodycomp-notion/internal/platform/logger"
	"bodycomp-notion/internal/ports/auth"
)

// RequireBearer:
// - Si verifier == nil => modo abierto, el request sigue igual.
// - Si verifier != nil => exige Bearer válido; si no, 401 sin tocar el handler.
func RequireBearer(verifier auth.AuthVerifier, log logger.Logger) func(http.Handler) http.Handler {
	log = logger.Scope(log, "Auth")

	return func(next http.Handler) http.Handler {
		if verifier == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				log.Debug("token rejected", map[string]any{
					"path": r.URL.Path,
					"err":  err,
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			log.Debug("token accepted", map[string]any{
				"path":    r.URL.Path,
				"subject": claims.Subject,
			})
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
