package domain

import "context"

// Identity is the profile returned by the identity provider
type Identity struct {
	ProviderID  string   `json:"providerId" bson:"providerId"`
	DisplayName string   `json:"displayName" bson:"displayName"`
	Emails      []string `json:"emails" bson:"emails"`
}

// PrimaryEmail returns the first email or an empty string
func (i *Identity) PrimaryEmail() string {
	if i == nil || len(i.Emails) == 0 {
		return ""
	}
	return i.Emails[0]
}

type identityKey struct{}

// WithIdentity adds the authenticated identity to the context
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity attached by the auth middleware, or nil
func IdentityFromContext(ctx context.Context) *Identity {
	identity, _ := ctx.Value(identityKey{}).(*Identity)
	return identity
}
