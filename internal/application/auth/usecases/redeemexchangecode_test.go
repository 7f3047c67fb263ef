package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagecast/internal/domain/auth"
	"stagecast/internal/domain/user"
	apperrors "stagecast/internal/shared/errors"
)

type redeemFixture struct {
	uc            *RedeemExchangeCodeUseCase
	exchangeCodes *fakeExchangeCodeRepo
	refreshTokens *fakeRefreshTokenRepo
	users         *fakeUserRepo
}

func newRedeemFixture() *redeemFixture {
	f := &redeemFixture{
		exchangeCodes: newFakeExchangeCodeRepo(),
		refreshTokens: newFakeRefreshTokenRepo(),
		users:         newFakeUserRepo(),
	}
	f.uc = NewRedeemExchangeCodeUseCase(f.exchangeCodes, f.refreshTokens, f.users, testLogger)
	return f
}

func (f *redeemFixture) seedCode(t *testing.T, code string) *user.User {
	t.Helper()
	owner, err := user.NewUser("u_owner", "github", "12345", "alice@example.com", "alice", "")
	require.NoError(t, err)
	f.users.add(owner)

	record, err := auth.NewExchangeCode(code, owner.ID)
	require.NoError(t, err)
	require.NoError(t, f.exchangeCodes.Create(context.Background(), record))
	return owner
}

func TestRedeemExchangeCode(t *testing.T) {
	f := newRedeemFixture()
	owner := f.seedCode(t, "code-1")

	result, err := f.uc.Execute(context.Background(), RedeemExchangeCodeCommand{Code: "code-1"})
	require.NoError(t, err)

	assert.Equal(t, owner.ID, result.User.ID)
	assert.True(t, strings.HasPrefix(result.RefreshToken, "rt_"))

	stored, err := f.refreshTokens.GetByToken(context.Background(), result.RefreshToken)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, owner.ID, stored.UserID)
}

func TestRedeemExchangeCodeExactlyOnce(t *testing.T) {
	f := newRedeemFixture()
	f.seedCode(t, "code-1")

	_, err := f.uc.Execute(context.Background(), RedeemExchangeCodeCommand{Code: "code-1"})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), RedeemExchangeCodeCommand{Code: "code-1"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeInvalidExchangeCode, appErr.Type)

	// Only the first redemption produced a token.
	assert.Len(t, f.refreshTokens.tokens, 1)
}

func TestRedeemExchangeCodeUnknown(t *testing.T) {
	f := newRedeemFixture()

	_, err := f.uc.Execute(context.Background(), RedeemExchangeCodeCommand{Code: "never-issued"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeInvalidExchangeCode, appErr.Type)
}

func TestRedeemExchangeCodeMissing(t *testing.T) {
	f := newRedeemFixture()

	_, err := f.uc.Execute(context.Background(), RedeemExchangeCodeCommand{})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeMissingParameter, appErr.Type)
}

func TestRedeemExchangeCodeDeletedOwner(t *testing.T) {
	f := newRedeemFixture()
	owner := f.seedCode(t, "code-1")
	require.NoError(t, f.users.Delete(context.Background(), owner.ID))

	_, err := f.uc.Execute(context.Background(), RedeemExchangeCodeCommand{Code: "code-1"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeInvalidExchangeCode, appErr.Type)
	assert.Empty(t, f.refreshTokens.tokens)
}
