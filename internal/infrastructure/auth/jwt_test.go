package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagecast/internal/domain/user"
)

type fakeUserRepo struct {
	bySID map[string]*user.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	return r.bySID[sid], nil
}
func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) GetByProviderIdentity(ctx context.Context, provider, providerID string) (*user.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error      { return nil }

func newTestIssuer(t *testing.T, users *fakeUserRepo) *SessionTokenIssuer {
	t.Helper()
	return NewSessionTokenIssuer("test-secret", 15, users)
}

func TestMintAndVerifyAccess(t *testing.T) {
	u := &user.User{ID: 1, SID: "usr_abc123", Username: "alice"}
	issuer := newTestIssuer(t, &fakeUserRepo{bySID: map[string]*user.User{u.SID: u}})

	token, err := issuer.MintAccess(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := issuer.VerifyAccess(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, u.SID, resolved.SID)
}

func TestVerifyAccessExpired(t *testing.T) {
	u := &user.User{ID: 1, SID: "usr_abc123"}
	issuer := newTestIssuer(t, &fakeUserRepo{bySID: map[string]*user.User{u.SID: u}})

	token, err := issuer.MintAccess(u)
	require.NoError(t, err)

	// Move the clock past the 15 minute expiry.
	issuer.now = func() time.Time { return time.Now().Add(16 * time.Minute) }

	resolved, err := issuer.VerifyAccess(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestVerifyAccessTampered(t *testing.T) {
	u := &user.User{ID: 1, SID: "usr_abc123"}
	issuer := newTestIssuer(t, &fakeUserRepo{bySID: map[string]*user.User{u.SID: u}})

	token, err := issuer.MintAccess(u)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	resolved, err := issuer.VerifyAccess(context.Background(), tampered)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestVerifyAccessWrongSecret(t *testing.T) {
	u := &user.User{ID: 1, SID: "usr_abc123"}
	repo := &fakeUserRepo{bySID: map[string]*user.User{u.SID: u}}

	token, err := NewSessionTokenIssuer("other-secret", 15, repo).MintAccess(u)
	require.NoError(t, err)

	resolved, err := newTestIssuer(t, repo).VerifyAccess(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestVerifyAccessDeletedUser(t *testing.T) {
	u := &user.User{ID: 1, SID: "usr_gone"}
	issuer := newTestIssuer(t, &fakeUserRepo{bySID: map[string]*user.User{}})

	token, err := issuer.MintAccess(u)
	require.NoError(t, err)

	resolved, err := issuer.VerifyAccess(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestGenerateRefreshToken(t *testing.T) {
	first, err := GenerateRefreshToken()
	require.NoError(t, err)
	second, err := GenerateRefreshToken()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, "rt_"))
	assert.Len(t, first, 3+64)
	assert.NotEqual(t, first, second)
}
