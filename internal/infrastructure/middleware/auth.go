package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"boardgame-catalog-api/internal/domain"

	"github.com/rs/zerolog"
)

// SessionResolver resolves a session id into an identity
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*domain.Identity, error)
}

// RequireAuthenticated rejects requests without a live session with 401.
// The wrapped handler only runs once the identity is in the request context.
func RequireAuthenticated(resolver SessionResolver, cookie SessionCookie, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, _ := cookie.Read(r)

			identity, err := resolver.Resolve(r.Context(), sessionID)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					writeMessage(w, http.StatusUnauthorized, "You must be logged in to access this resource.")
					return
				}
				logger.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to resolve session")
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(domain.WithIdentity(r.Context(), identity)))
		})
	}
}

// LoadIdentity attaches the identity when a live session exists and never rejects the request
func LoadIdentity(resolver SessionResolver, cookie SessionCookie, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, ok := cookie.Read(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := resolver.Resolve(r.Context(), sessionID)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					logger.Warn().Err(err).Msg("Failed to resolve optional session")
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(domain.WithIdentity(r.Context(), identity)))
		})
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
