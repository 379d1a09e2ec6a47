package ports

import (
	"context"

	"boardgame-catalog-api/internal/domain"
)

// IdentityProvider resolves an authorization code into an identity.
// Every failure wraps domain.ErrAuthFailed.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Authenticate(ctx context.Context, code string) (*domain.Identity, error)
}
