package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stagecast/internal/shared/errors"
)

func newInitiateUseCase(states *fakeStateRepo) *InitiateOAuthLoginUseCase {
	registry := newFakeRegistry(&fakeProviderClient{name: "github", identity: githubIdentity()})
	return NewInitiateOAuthLoginUseCase(registry, states, []string{"http://localhost:3000"}, testLogger)
}

func TestInitiateOAuthLogin(t *testing.T) {
	states := newFakeStateRepo()
	uc := newInitiateUseCase(states)

	result, err := uc.Execute(context.Background(), InitiateOAuthLoginCommand{
		Provider: "github",
		Next:     "/stages/abc",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.State)
	assert.Contains(t, result.AuthURL, "state="+result.State)

	stored, err := states.GetByToken(context.Background(), result.State)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "/stages/abc", stored.ReturnTo)
}

func TestInitiateOAuthLoginUnknownProvider(t *testing.T) {
	uc := newInitiateUseCase(newFakeStateRepo())

	_, err := uc.Execute(context.Background(), InitiateOAuthLoginCommand{Provider: "gitlab"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeInvalidProvider, appErr.Type)
	assert.Contains(t, appErr.Details, "github")
}

func TestInitiateOAuthLoginNextValidation(t *testing.T) {
	tests := []struct {
		name    string
		next    string
		want    string
		wantErr bool
	}{
		{name: "empty defaults to root", next: "", want: "/"},
		{name: "relative path", next: "/stages", want: "/stages"},
		{name: "allowed origin", next: "http://localhost:3000/welcome", want: "http://localhost:3000/welcome"},
		{name: "protocol relative rejected", next: "//evil.example.com", wantErr: true},
		{name: "foreign origin rejected", next: "https://evil.example.com/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			states := newFakeStateRepo()
			uc := newInitiateUseCase(states)

			result, err := uc.Execute(context.Background(), InitiateOAuthLoginCommand{
				Provider: "github",
				Next:     tt.next,
			})
			if tt.wantErr {
				require.Error(t, err)
				var appErr *apperrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
				return
			}
			require.NoError(t, err)

			stored, err := states.GetByToken(context.Background(), result.State)
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, tt.want, stored.ReturnTo)
		})
	}
}

func TestInitiateOAuthLoginStatesAreUnique(t *testing.T) {
	uc := newInitiateUseCase(newFakeStateRepo())

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		result, err := uc.Execute(context.Background(), InitiateOAuthLoginCommand{Provider: "github"})
		require.NoError(t, err)
		require.False(t, seen[result.State], "state %q issued twice", result.State)
		seen[result.State] = true
		assert.False(t, strings.Contains(result.State, " "))
	}
}
