package usecases

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"stagecast/internal/domain/auth"
	infraauth "stagecast/internal/infrastructure/auth"
	apperrors "stagecast/internal/shared/errors"
	"stagecast/internal/shared/logger"
)

type InitiateOAuthLoginCommand struct {
	Provider string
	Next     string
}

type InitiateOAuthLoginResult struct {
	AuthURL string
	State   string
}

// InitiateOAuthLoginUseCase issues an anti-CSRF state nonce bound to the
// post-login destination and builds the provider authorization URL.
type InitiateOAuthLoginUseCase struct {
	providers      *infraauth.ProviderRegistry
	states         auth.OAuthStateRepository
	allowedOrigins []string
	logger         logger.Interface
}

func NewInitiateOAuthLoginUseCase(
	providers *infraauth.ProviderRegistry,
	states auth.OAuthStateRepository,
	allowedOrigins []string,
	logger logger.Interface,
) *InitiateOAuthLoginUseCase {
	return &InitiateOAuthLoginUseCase{
		providers:      providers,
		states:         states,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

func (uc *InitiateOAuthLoginUseCase) Execute(ctx context.Context, cmd InitiateOAuthLoginCommand) (*InitiateOAuthLoginResult, error) {
	client, err := uc.providers.Get(cmd.Provider)
	if err != nil {
		return nil, apperrors.NewInvalidProviderError(cmd.Provider, uc.providers.Names())
	}

	next, err := uc.validateNext(cmd.Next)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	state, err := auth.NewOAuthState(uuid.NewString(), next)
	if err != nil {
		return nil, fmt.Errorf("failed to create state: %w", err)
	}

	if err := uc.states.Create(ctx, state); err != nil {
		uc.logger.Errorw("failed to store oauth state", "provider", cmd.Provider, "error", err)
		return nil, fmt.Errorf("failed to store state: %w", err)
	}

	uc.logger.Infow("oauth login initiated", "provider", cmd.Provider, "next", next)

	return &InitiateOAuthLoginResult{
		AuthURL: client.AuthCodeURL(state.Token),
		State:   state.Token,
	}, nil
}

// validateNext restricts the post-login destination to relative paths or
// allow-listed origins so the callback cannot redirect off-site.
func (uc *InitiateOAuthLoginUseCase) validateNext(next string) (string, error) {
	if next == "" {
		return "/", nil
	}

	if strings.HasPrefix(next, "/") {
		// Protocol-relative URLs escape the frontend origin.
		if strings.HasPrefix(next, "//") {
			return "", fmt.Errorf("invalid redirect target")
		}
		return next, nil
	}

	u, err := url.Parse(next)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid redirect target")
	}
	origin := u.Scheme + "://" + u.Host
	for _, allowed := range uc.allowedOrigins {
		if origin == allowed {
			return next, nil
		}
	}
	return "", fmt.Errorf("invalid redirect target")
}
