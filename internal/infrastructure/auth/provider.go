package auth

import (
	"context"
	"fmt"
	"sort"
)

// ProviderToken carries the tokens returned by a provider's code exchange.
type ProviderToken struct {
	AccessToken  string
	RefreshToken string
}

// ProviderIdentity is the normalized view of a provider account used to
// resolve or create local users. Email is always the verified primary
// address reported by the provider.
type ProviderIdentity struct {
	Provider   string
	ProviderID string
	Email      string
	Username   string
	AvatarURL  string
}

// ProviderClient is the uniform interface over supported OAuth identity
// providers. Implementations convert provider failures into errors rather
// than surfacing raw HTTP responses to callers.
type ProviderClient interface {
	// Name returns the provider identifier used in routes and user records.
	Name() string

	// AuthCodeURL builds the authorization redirect URL carrying the state.
	AuthCodeURL(state string) string

	// ExchangeCode trades an authorization code for provider tokens.
	ExchangeCode(ctx context.Context, code string) (*ProviderToken, error)

	// FetchIdentity retrieves the normalized identity for the token. It
	// fails when the provider reports no verified primary email.
	FetchIdentity(ctx context.Context, accessToken string) (*ProviderIdentity, error)

	// RevokeToken best-effort revokes a provider access token. Providers
	// without a revocation endpoint return nil.
	RevokeToken(ctx context.Context, accessToken string) error
}

// ProviderRegistry holds the configured provider clients keyed by name.
type ProviderRegistry struct {
	clients map[string]ProviderClient
}

func NewProviderRegistry(clients ...ProviderClient) *ProviderRegistry {
	m := make(map[string]ProviderClient, len(clients))
	for _, c := range clients {
		m[c.Name()] = c
	}
	return &ProviderRegistry{clients: m}
}

// Get returns the client for the given provider name.
func (r *ProviderRegistry) Get(name string) (ProviderClient, error) {
	client, ok := r.clients[name]
	if !ok {
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
	return client, nil
}

// Names returns the registered provider names in sorted order.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
