package usecases

import (
	"context"
	"fmt"
	"sync"

	"stagecast/internal/domain/auth"
	"stagecast/internal/domain/user"
	infraauth "stagecast/internal/infrastructure/auth"
	"stagecast/internal/shared/logger"
)

var testLogger = logger.NewLogger()

type fakeStateRepo struct {
	mu     sync.Mutex
	states map[string]*auth.OAuthState
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{states: map[string]*auth.OAuthState{}}
}

func (r *fakeStateRepo) Create(ctx context.Context, state *auth.OAuthState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[state.Token] = state
	return nil
}

func (r *fakeStateRepo) GetByToken(ctx context.Context, token string) (*auth.OAuthState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[token], nil
}

func (r *fakeStateRepo) Delete(ctx context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.states[token]; !ok {
		return false, nil
	}
	delete(r.states, token)
	return true, nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*auth.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[string]*auth.RefreshToken{}}
}

func (r *fakeRefreshTokenRepo) Create(ctx context.Context, token *auth.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetByToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tokens[token], nil
}

func (r *fakeRefreshTokenRepo) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteByUserID(ctx context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range r.tokens {
		if v.UserID == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}

type fakeExchangeCodeRepo struct {
	mu    sync.Mutex
	codes map[string]*auth.ExchangeCode
}

func newFakeExchangeCodeRepo() *fakeExchangeCodeRepo {
	return &fakeExchangeCodeRepo{codes: map[string]*auth.ExchangeCode{}}
}

func (r *fakeExchangeCodeRepo) Create(ctx context.Context, code *auth.ExchangeCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[code.Code] = code
	return nil
}

func (r *fakeExchangeCodeRepo) GetByCode(ctx context.Context, code string) (*auth.ExchangeCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codes[code], nil
}

func (r *fakeExchangeCodeRepo) Delete(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.codes[code]; !ok {
		return false, nil
	}
	delete(r.codes, code)
	return true, nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*user.User{}}
}

func (r *fakeUserRepo) add(u *user.User) *user.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	r.add(u)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *fakeUserRepo) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.SID == sid {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByProviderIdentity(ctx context.Context, provider, providerID string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Provider == provider && u.ProviderID == providerID {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// fakeProviderClient responds with a canned identity.
type fakeProviderClient struct {
	name        string
	identity    *infraauth.ProviderIdentity
	exchangeErr error
	identityErr error
	revoked     []string
}

func (c *fakeProviderClient) Name() string { return c.name }

func (c *fakeProviderClient) AuthCodeURL(state string) string {
	return fmt.Sprintf("https://provider.example/authorize?state=%s", state)
}

func (c *fakeProviderClient) ExchangeCode(ctx context.Context, code string) (*infraauth.ProviderToken, error) {
	if c.exchangeErr != nil {
		return nil, c.exchangeErr
	}
	return &infraauth.ProviderToken{AccessToken: "provider-access-token"}, nil
}

func (c *fakeProviderClient) FetchIdentity(ctx context.Context, accessToken string) (*infraauth.ProviderIdentity, error) {
	if c.identityErr != nil {
		return nil, c.identityErr
	}
	return c.identity, nil
}

func (c *fakeProviderClient) RevokeToken(ctx context.Context, accessToken string) error {
	c.revoked = append(c.revoked, accessToken)
	return nil
}

func newFakeRegistry(clients ...infraauth.ProviderClient) *infraauth.ProviderRegistry {
	return infraauth.NewProviderRegistry(clients...)
}

func githubIdentity() *infraauth.ProviderIdentity {
	return &infraauth.ProviderIdentity{
		Provider:   "github",
		ProviderID: "12345",
		Email:      "alice@example.com",
		Username:   "alice",
		AvatarURL:  "https://avatars.example.com/alice",
	}
}
