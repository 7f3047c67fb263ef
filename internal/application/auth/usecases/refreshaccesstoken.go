package usecases

import (
	"context"
	"fmt"
	"time"

	"stagecast/internal/domain/auth"
	"stagecast/internal/domain/user"
	infraauth "stagecast/internal/infrastructure/auth"
	apperrors "stagecast/internal/shared/errors"
	"stagecast/internal/shared/logger"
)

type RefreshAccessTokenCommand struct {
	RefreshToken string
}

type RefreshAccessTokenResult struct {
	User        *user.User
	AccessToken string
	// RefreshToken echoes the redeemed token; redemption does not rotate it.
	RefreshToken string
	ExpiresIn    int64
}

// RefreshAccessTokenUseCase redeems a refresh token for a new access
// token. The refresh token stays valid until revoked or 30 days after
// creation, whichever comes first.
type RefreshAccessTokenUseCase struct {
	refreshTokens auth.RefreshTokenRepository
	users         user.Repository
	issuer        *infraauth.SessionTokenIssuer
	logger        logger.Interface
	now           func() time.Time
}

func NewRefreshAccessTokenUseCase(
	refreshTokens auth.RefreshTokenRepository,
	users user.Repository,
	issuer *infraauth.SessionTokenIssuer,
	logger logger.Interface,
) *RefreshAccessTokenUseCase {
	return &RefreshAccessTokenUseCase{
		refreshTokens: refreshTokens,
		users:         users,
		issuer:        issuer,
		logger:        logger,
		now:           time.Now,
	}
}

func (uc *RefreshAccessTokenUseCase) Execute(ctx context.Context, cmd RefreshAccessTokenCommand) (*RefreshAccessTokenResult, error) {
	if cmd.RefreshToken == "" {
		return nil, apperrors.NewMissingParameterError("refresh_token")
	}

	record, err := uc.refreshTokens.GetByToken(ctx, cmd.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if record == nil {
		return nil, apperrors.NewInvalidRefreshTokenError()
	}

	if record.IsExpired(uc.now()) {
		// Hard expiry: delete so the caller is forced to re-login.
		if err := uc.refreshTokens.Delete(ctx, cmd.RefreshToken); err != nil {
			uc.logger.Warnw("failed to delete expired refresh token", "error", err)
		}
		return nil, apperrors.NewInvalidRefreshTokenError()
	}

	owner, err := uc.users.GetByID(ctx, record.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if owner == nil {
		return nil, apperrors.NewInvalidRefreshTokenError()
	}

	accessToken, err := uc.issuer.MintAccess(owner)
	if err != nil {
		return nil, fmt.Errorf("failed to mint access token: %w", err)
	}

	return &RefreshAccessTokenResult{
		User:         owner,
		AccessToken:  accessToken,
		RefreshToken: record.Token,
		ExpiresIn:    int64(uc.issuer.AccessExpMinutes() * 60),
	}, nil
}
