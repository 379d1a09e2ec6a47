package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"boardgame-catalog-api/internal/domain"
	"boardgame-catalog-api/internal/ports"

	"github.com/rs/zerolog"
)

// DefaultSessionTTL is how long the session store keeps a login
const DefaultSessionTTL = 14 * 24 * time.Hour

// AuthService drives the login handshake and resolves sessions into identities
type AuthService struct {
	provider ports.IdentityProvider
	sessions ports.SessionRepository
	recorder ports.TransitionRecorder
	ttl      time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

// AuthOption configures an AuthService
type AuthOption func(*AuthService)

// WithSessionTTL sets the store-side session lifetime
func WithSessionTTL(ttl time.Duration) AuthOption {
	return func(s *AuthService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// WithTransitionRecorder records every state transition, e.g. as metrics
func WithTransitionRecorder(recorder ports.TransitionRecorder) AuthOption {
	return func(s *AuthService) { s.recorder = recorder }
}

// NewAuthService creates a new auth service
func NewAuthService(
	provider ports.IdentityProvider,
	sessions ports.SessionRepository,
	logger zerolog.Logger,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		provider: provider,
		sessions: sessions,
		ttl:      DefaultSessionTTL,
		now:      time.Now,
		logger:   logger.With().Str("component", "auth").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoginURL returns the provider consent URL for the given state token
func (s *AuthService) LoginURL(state string) string {
	s.transition(domain.AuthStatePendingProvider, "redirect", "")
	return s.provider.AuthCodeURL(state)
}

// CompleteLogin resolves the authorization code and opens a new session
func (s *AuthService) CompleteLogin(ctx context.Context, code string) (*domain.Session, error) {
	identity, err := s.provider.Authenticate(ctx, code)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Identity provider rejected login")
		s.transition(domain.AuthStateAnonymous, "failure", "")
		if !errors.Is(err, domain.ErrAuthFailed) {
			err = fmt.Errorf("%w: %v", domain.ErrAuthFailed, err)
		}
		return nil, err
	}

	id, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	now := s.now()
	session := &domain.Session{
		ID:        id,
		Identity:  identity,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Error().Err(err).Str("displayName", identity.DisplayName).Msg("Failed to store session")
		s.transition(domain.AuthStateAnonymous, "failure", identity.DisplayName)
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.transition(domain.AuthStateAuthenticated, "success", identity.DisplayName)
	return session, nil
}

// Resolve returns the identity bound to sessionID.
// Missing, anonymous and expired sessions yield domain.ErrUnauthorized.
func (s *AuthService) Resolve(ctx context.Context, sessionID string) (*domain.Identity, error) {
	if sessionID == "" {
		return nil, domain.ErrUnauthorized
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.IsAnonymous() {
		return nil, domain.ErrUnauthorized
	}

	if session.IsExpired(s.now()) {
		s.transition(domain.AuthStateExpired, "expired", session.DisplayName())
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to delete expired session")
		}
		return nil, domain.ErrUnauthorized
	}

	return session.Identity, nil
}

// Logout destroys the session. Unknown or empty ids are not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		s.transition(domain.AuthStateLoggedOut, "no_session", "")
		return nil
	}

	var displayName string
	if session, err := s.sessions.Get(ctx, sessionID); err == nil {
		displayName = session.DisplayName()
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.transition(domain.AuthStateLoggedOut, "success", displayName)
	return nil
}

func (s *AuthService) transition(state domain.AuthState, outcome, displayName string) {
	event := s.logger.Info()
	if outcome == "failure" || outcome == "expired" {
		event = s.logger.Warn()
	}
	event.
		Str("state", string(state)).
		Str("outcome", outcome).
		Str("displayName", displayName).
		Msg("Auth state transition")

	if s.recorder != nil {
		s.recorder.RecordTransition(state, outcome)
	}
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
