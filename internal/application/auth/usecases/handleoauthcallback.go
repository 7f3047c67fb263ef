package usecases

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"stagecast/internal/domain/auth"
	"stagecast/internal/domain/user"
	infraauth "stagecast/internal/infrastructure/auth"
	apperrors "stagecast/internal/shared/errors"
	"stagecast/internal/shared/id"
	"stagecast/internal/shared/logger"
)

type HandleOAuthCallbackCommand struct {
	Provider string
	Code     string
	State    string
}

type HandleOAuthCallbackResult struct {
	User *user.User
	// RedirectURL points at the frontend destination carrying the
	// one-time exchange code as a query parameter.
	RedirectURL string
	IsNewUser   bool
}

// HandleOAuthCallbackUseCase completes the OAuth handshake: it consumes
// the state nonce, trades the authorization code with the provider,
// resolves or creates the local user, and mints the one-time exchange
// code delivered back to the frontend via redirect. Any failure aborts
// the chain before an exchange code is issued.
type HandleOAuthCallbackUseCase struct {
	providers     *infraauth.ProviderRegistry
	states        auth.OAuthStateRepository
	users         user.Repository
	exchangeCodes auth.ExchangeCodeRepository
	frontendURL   string
	logger        logger.Interface
	now           func() time.Time
}

func NewHandleOAuthCallbackUseCase(
	providers *infraauth.ProviderRegistry,
	states auth.OAuthStateRepository,
	users user.Repository,
	exchangeCodes auth.ExchangeCodeRepository,
	frontendURL string,
	logger logger.Interface,
) *HandleOAuthCallbackUseCase {
	return &HandleOAuthCallbackUseCase{
		providers:     providers,
		states:        states,
		users:         users,
		exchangeCodes: exchangeCodes,
		frontendURL:   strings.TrimSuffix(frontendURL, "/"),
		logger:        logger,
		now:           time.Now,
	}
}

func (uc *HandleOAuthCallbackUseCase) Execute(ctx context.Context, cmd HandleOAuthCallbackCommand) (*HandleOAuthCallbackResult, error) {
	client, err := uc.providers.Get(cmd.Provider)
	if err != nil {
		return nil, apperrors.NewInvalidProviderError(cmd.Provider, uc.providers.Names())
	}
	if cmd.Code == "" {
		return nil, apperrors.NewMissingParameterError("code")
	}
	if cmd.State == "" {
		return nil, apperrors.NewMissingParameterError("state")
	}

	returnTo, err := uc.consumeState(ctx, cmd.State)
	if err != nil {
		return nil, err
	}

	providerToken, err := client.ExchangeCode(ctx, cmd.Code)
	if err != nil {
		uc.logger.Warnw("provider code exchange failed", "provider", cmd.Provider, "error", err)
		return nil, apperrors.NewProviderExchangeFailedError(err.Error())
	}

	identity, err := client.FetchIdentity(ctx, providerToken.AccessToken)
	if err != nil {
		uc.logger.Warnw("provider identity fetch failed", "provider", cmd.Provider, "error", err)
		return nil, apperrors.NewProviderIdentityRejectedError(err.Error())
	}

	resolved, isNew, err := uc.resolveUser(ctx, identity)
	if err != nil {
		// The login is rejected, so the provider token will never be used.
		if revokeErr := client.RevokeToken(ctx, providerToken.AccessToken); revokeErr != nil {
			uc.logger.Warnw("provider token revocation failed", "provider", cmd.Provider, "error", revokeErr)
		}
		return nil, err
	}

	code, err := auth.NewExchangeCode(uuid.NewString(), resolved.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create exchange code: %w", err)
	}
	if err := uc.exchangeCodes.Create(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to store exchange code: %w", err)
	}

	uc.logger.Infow("oauth callback completed",
		"provider", cmd.Provider,
		"user_sid", resolved.SID,
		"new_user", isNew)

	return &HandleOAuthCallbackResult{
		User:        resolved,
		RedirectURL: uc.buildRedirectURL(returnTo, code.Code),
		IsNewUser:   isNew,
	}, nil
}

// consumeState deletes the state nonce and validates it. The delete
// happens even for expired records so a stale nonce cannot be replayed,
// and its result decides races between concurrent callbacks.
func (uc *HandleOAuthCallbackUseCase) consumeState(ctx context.Context, token string) (string, error) {
	state, err := uc.states.GetByToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to look up state: %w", err)
	}
	if state == nil {
		return "", apperrors.NewInvalidStateError()
	}

	deleted, err := uc.states.Delete(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to consume state: %w", err)
	}
	if !deleted || state.IsExpired(uc.now()) {
		return "", apperrors.NewInvalidStateError()
	}
	return state.ReturnTo, nil
}

// resolveUser finds the user for a provider identity, refreshing the
// profile on login, or creates a new account. An existing account under
// the same email but a different provider identity is a conflict.
func (uc *HandleOAuthCallbackUseCase) resolveUser(ctx context.Context, identity *infraauth.ProviderIdentity) (*user.User, bool, error) {
	existing, err := uc.users.GetByProviderIdentity(ctx, identity.Provider, identity.ProviderID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		existing.UpdateProfile(identity.Email, identity.Username, identity.AvatarURL)
		if err := uc.users.Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("failed to update user: %w", err)
		}
		return existing, false, nil
	}

	byEmail, err := uc.users.GetByEmail(ctx, identity.Email)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up user by email: %w", err)
	}
	if byEmail != nil {
		// Same email, different identity: never merge accounts silently.
		return nil, false, apperrors.NewIdentityConflictError(
			fmt.Sprintf("User already exists with a different %s account", byEmail.Provider))
	}

	sid, err := id.NewUserID()
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate user ID: %w", err)
	}

	created, err := user.NewUser(sid, identity.Provider, identity.ProviderID, identity.Email, identity.Username, identity.AvatarURL)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	if err := uc.users.Create(ctx, created); err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	return created, true, nil
}

func (uc *HandleOAuthCallbackUseCase) buildRedirectURL(returnTo, code string) string {
	target := returnTo
	switch {
	case target == "" || target == "/":
		target = uc.frontendURL + "/"
	case strings.HasPrefix(target, "/"):
		// Relative paths resolve against the frontend; absolute targets
		// were already checked against the origin allow-list at initiate.
		target = uc.frontendURL + target
	}

	separator := "?"
	if strings.Contains(target, "?") {
		separator = "&"
	}
	return target + separator + "code=" + url.QueryEscape(code)
}
