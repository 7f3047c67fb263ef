package usecases

import (
	"context"
	"fmt"

	"stagecast/internal/domain/auth"
	"stagecast/internal/domain/user"
	infraauth "stagecast/internal/infrastructure/auth"
	apperrors "stagecast/internal/shared/errors"
	"stagecast/internal/shared/logger"
)

type RedeemExchangeCodeCommand struct {
	Code string
}

type RedeemExchangeCodeResult struct {
	User         *user.User
	RefreshToken string
}

// RedeemExchangeCodeUseCase trades a one-time exchange code for a fresh
// refresh token. The code is deleted before any token is minted, so a
// second redemption of the same code always fails.
type RedeemExchangeCodeUseCase struct {
	exchangeCodes auth.ExchangeCodeRepository
	refreshTokens auth.RefreshTokenRepository
	users         user.Repository
	logger        logger.Interface
}

func NewRedeemExchangeCodeUseCase(
	exchangeCodes auth.ExchangeCodeRepository,
	refreshTokens auth.RefreshTokenRepository,
	users user.Repository,
	logger logger.Interface,
) *RedeemExchangeCodeUseCase {
	return &RedeemExchangeCodeUseCase{
		exchangeCodes: exchangeCodes,
		refreshTokens: refreshTokens,
		users:         users,
		logger:        logger,
	}
}

func (uc *RedeemExchangeCodeUseCase) Execute(ctx context.Context, cmd RedeemExchangeCodeCommand) (*RedeemExchangeCodeResult, error) {
	if cmd.Code == "" {
		return nil, apperrors.NewMissingParameterError("code")
	}

	record, err := uc.exchangeCodes.GetByCode(ctx, cmd.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up exchange code: %w", err)
	}
	if record == nil {
		return nil, apperrors.NewInvalidExchangeCodeError()
	}

	deleted, err := uc.exchangeCodes.Delete(ctx, cmd.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to consume exchange code: %w", err)
	}
	if !deleted {
		// A concurrent redemption won the race.
		return nil, apperrors.NewInvalidExchangeCodeError()
	}

	owner, err := uc.users.GetByID(ctx, record.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if owner == nil {
		return nil, apperrors.NewInvalidExchangeCodeError()
	}

	tokenValue, err := infraauth.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	refreshToken, err := auth.NewRefreshToken(tokenValue, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}
	if err := uc.refreshTokens.Create(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	uc.logger.Infow("exchange code redeemed", "user_sid", owner.SID)

	return &RedeemExchangeCodeResult{
		User:         owner,
		RefreshToken: refreshToken.Token,
	}, nil
}
