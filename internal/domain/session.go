package domain

import "time"

// AuthState is a state of the browser login handshake
type AuthState string

const (
	AuthStateAnonymous       AuthState = "anonymous"
	AuthStatePendingProvider AuthState = "pending_provider"
	AuthStateAuthenticated   AuthState = "authenticated"
	AuthStateLoggedOut       AuthState = "logged_out"
	AuthStateExpired         AuthState = "expired"
)

// Session binds a browser to an identity until ExpiresAt
type Session struct {
	ID        string    `json:"id"`
	Identity  *Identity `json:"identity,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsAnonymous reports whether the session carries no identity
func (s *Session) IsAnonymous() bool {
	return s == nil || s.Identity == nil
}

// IsExpired reports whether the session is past its expiry at now
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// DisplayName returns the identity display name, if any
func (s *Session) DisplayName() string {
	if s.IsAnonymous() {
		return ""
	}
	return s.Identity.DisplayName
}
