package usecases

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagecast/internal/domain/user"
	apperrors "stagecast/internal/shared/errors"
)

type callbackFixture struct {
	uc            *HandleOAuthCallbackUseCase
	states        *fakeStateRepo
	users         *fakeUserRepo
	exchangeCodes *fakeExchangeCodeRepo
	provider      *fakeProviderClient
}

func newCallbackFixture() *callbackFixture {
	f := &callbackFixture{
		states:        newFakeStateRepo(),
		users:         newFakeUserRepo(),
		exchangeCodes: newFakeExchangeCodeRepo(),
		provider:      &fakeProviderClient{name: "github", identity: githubIdentity()},
	}
	f.uc = NewHandleOAuthCallbackUseCase(
		newFakeRegistry(f.provider),
		f.states,
		f.users,
		f.exchangeCodes,
		"http://localhost:3000",
		testLogger,
	)
	return f
}

// issueState seeds a state nonce the way the initiate flow would.
func (f *callbackFixture) issueState(t *testing.T, returnTo string) string {
	t.Helper()
	initiate := NewInitiateOAuthLoginUseCase(
		newFakeRegistry(f.provider), f.states, []string{"http://localhost:3000"}, testLogger)
	result, err := initiate.Execute(context.Background(), InitiateOAuthLoginCommand{
		Provider: "github",
		Next:     returnTo,
	})
	require.NoError(t, err)
	return result.State
}

func TestHandleOAuthCallbackCreatesUser(t *testing.T) {
	f := newCallbackFixture()
	state := f.issueState(t, "/stages/abc")

	result, err := f.uc.Execute(context.Background(), HandleOAuthCallbackCommand{
		Provider: "github",
		Code:     "provider-code",
		State:    state,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.IsNewUser)
	assert.Equal(t, "github", result.User.Provider)
	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.NotEmpty(t, result.User.SID)

	require.True(t, strings.HasPrefix(result.RedirectURL, "http://localhost:3000/stages/abc?code="),
		"unexpected redirect %q", result.RedirectURL)

	parsed, err := url.Parse(result.RedirectURL)
	require.NoError(t, err)
	code := parsed.Query().Get("code")
	require.NotEmpty(t, code)

	stored, err := f.exchangeCodes.GetByCode(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, result.User.ID, stored.UserID)
}

func TestHandleOAuthCallbackExistingUserProfileRefresh(t *testing.T) {
	f := newCallbackFixture()
	existing, err := user.NewUser("u_existing", "github", "12345", "old@example.com", "old-name", "")
	require.NoError(t, err)
	f.users.add(existing)

	state := f.issueState(t, "")
	result, err := f.uc.Execute(context.Background(), HandleOAuthCallbackCommand{
		Provider: "github",
		Code:     "provider-code",
		State:    state,
	})
	require.NoError(t, err)

	assert.False(t, result.IsNewUser)
	assert.Equal(t, existing.ID, result.User.ID)
	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.Equal(t, "alice", result.User.Username)
}

func TestHandleOAuthCallbackStateIsSingleUse(t *testing.T) {
	f := newCallbackFixture()
	state := f.issueState(t, "")

	cmd := HandleOAuthCallbackCommand{Provider: "github", Code: "provider-code", State: state}
	_, err := f.uc.Execute(context.Background(), cmd)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), cmd)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeInvalidState, appErr.Type)
}

func TestHandleOAuthCallbackExpiredState(t *testing.T) {
	f := newCallbackFixture()
	state := f.issueState(t, "")

	f.uc.now = func() time.Time { return time.Now().Add(16 * time.Minute) }

	_, err := f.uc.Execute(context.Background(), HandleOAuthCallbackCommand{
		Provider: "github",
		Code:     "provider-code",
		State:    state,
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeInvalidState, appErr.Type)

	// Even an expired nonce is consumed, it cannot be replayed later.
	stored, lookupErr := f.states.GetByToken(context.Background(), state)
	require.NoError(t, lookupErr)
	assert.Nil(t, stored)
}

func TestHandleOAuthCallbackIdentityConflict(t *testing.T) {
	f := newCallbackFixture()
	existing, err := user.NewUser("u_existing", "google", "google-999", "alice@example.com", "alice", "")
	require.NoError(t, err)
	f.users.add(existing)

	state := f.issueState(t, "")
	_, err = f.uc.Execute(context.Background(), HandleOAuthCallbackCommand{
		Provider: "github",
		Code:     "provider-code",
		State:    state,
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeIdentityConflict, appErr.Type)
	assert.Equal(t, "User already exists with a different google account", appErr.Message)

	// The conflicting account is left untouched.
	stored, lookupErr := f.users.GetByID(context.Background(), existing.ID)
	require.NoError(t, lookupErr)
	assert.Equal(t, "google", stored.Provider)

	// No exchange code was minted for the failed login, and the provider
	// token was revoked since it will never be used.
	assert.Empty(t, f.exchangeCodes.codes)
	assert.Equal(t, []string{"provider-access-token"}, f.provider.revoked)
}

func TestHandleOAuthCallbackMissingParameters(t *testing.T) {
	f := newCallbackFixture()
	state := f.issueState(t, "")

	_, err := f.uc.Execute(context.Background(), HandleOAuthCallbackCommand{
		Provider: "github",
		State:    state,
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeMissingParameter, appErr.Type)

	_, err = f.uc.Execute(context.Background(), HandleOAuthCallbackCommand{
		Provider: "github",
		Code:     "provider-code",
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeMissingParameter, appErr.Type)

	// Neither failure consumed the state.
	stored, lookupErr := f.states.GetByToken(context.Background(), state)
	require.NoError(t, lookupErr)
	assert.NotNil(t, stored)
}

func TestHandleOAuthCallbackUnknownState(t *testing.T) {
	f := newCallbackFixture()

	_, err := f.uc.Execute(context.Background(), HandleOAuthCallbackCommand{
		Provider: "github",
		Code:     "provider-code",
		State:    "never-issued",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeInvalidState, appErr.Type)
}
