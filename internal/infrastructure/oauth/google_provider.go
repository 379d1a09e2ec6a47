package oauth

import (
	"context"
	"fmt"

	"boardgame-catalog-api/internal/domain"
	"boardgame-catalog-api/internal/ports"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleIssuer          = "https://accounts.google.com"
	defaultGoogleUserInfo = "https://www.googleapis.com/oauth2/v3/userinfo"
)

// Scopes requested from the provider
var Scopes = []string{"profile", "email"}

// GoogleConfig holds the OAuth client settings. Endpoint URLs default to Google's and can be
// overridden to point at another provider or a test server.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
}

// GoogleProvider implements IdentityProvider with the authorization-code grant
type GoogleProvider struct {
	oauth *oauth2.Config
	oidc  *oidc.Provider
}

// NewGoogleProvider creates a provider. ctx only configures the HTTP client used by go-oidc.
func NewGoogleProvider(ctx context.Context, cfg GoogleConfig) *GoogleProvider {
	endpoint := google.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = defaultGoogleUserInfo
	}

	providerConfig := &oidc.ProviderConfig{
		IssuerURL:   googleIssuer,
		AuthURL:     endpoint.AuthURL,
		TokenURL:    endpoint.TokenURL,
		UserInfoURL: userInfoURL,
		Algorithms:  []string{oidc.RS256},
	}

	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       Scopes,
		},
		oidc: providerConfig.NewProvider(ctx),
	}
}

// AuthCodeURL returns the consent page URL carrying state
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type profileClaims struct {
	Name      string `json:"name"`
	GivenName string `json:"given_name"`
}

// Authenticate exchanges the code and fetches the user's profile
func (p *GoogleProvider) Authenticate(ctx context.Context, code string) (*domain.Identity, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", domain.ErrAuthFailed)
	}

	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange: %v", domain.ErrAuthFailed, err)
	}

	info, err := p.oidc.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return nil, fmt.Errorf("%w: userinfo: %v", domain.ErrAuthFailed, err)
	}
	if info.Subject == "" {
		return nil, fmt.Errorf("%w: profile has no subject", domain.ErrAuthFailed)
	}

	var claims profileClaims
	if err := info.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: profile claims: %v", domain.ErrAuthFailed, err)
	}

	identity := &domain.Identity{
		ProviderID:  info.Subject,
		DisplayName: claims.Name,
		Emails:      []string{},
	}
	if info.Email != "" {
		identity.Emails = append(identity.Emails, info.Email)
	}
	if identity.DisplayName == "" {
		identity.DisplayName = claims.GivenName
	}
	if identity.DisplayName == "" {
		identity.DisplayName = info.Email
	}

	return identity, nil
}

var _ ports.IdentityProvider = (*GoogleProvider)(nil)
