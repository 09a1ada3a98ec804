package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"photo-sharing-backend/internal/auth"

	"github.com/rs/zerolog/log"
)

type contextKey string

const identityKey contextKey = "identity"

// RequireAuth rejects requests the strategy cannot authenticate and stores
// the caller's identity on the request context
func RequireAuth(strategy auth.Strategy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := strategy.Authenticate(r)
			if err != nil {
				status := auth.StatusCode(err)
				message := err.Error()
				switch status {
				case http.StatusUnauthorized:
					message = auth.ErrUnauthenticated.Error()
				case http.StatusForbidden:
					message = auth.ErrForbidden.Error()
				case http.StatusInternalServerError:
					log.Error().Err(err).Str("path", r.URL.Path).Msg("Authentication failed")
					message = "Server error"
				}
				respondError(w, message, status)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithIdentity returns a copy of ctx carrying identity
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity extracts the caller's identity from context
func GetIdentity(ctx context.Context) *auth.Identity {
	identity, _ := ctx.Value(identityKey).(*auth.Identity)
	return identity
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) string {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.UserID
	}
	return ""
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
