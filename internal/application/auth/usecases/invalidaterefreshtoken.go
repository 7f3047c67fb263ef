package usecases

import (
	"context"
	"fmt"

	"stagecast/internal/domain/auth"
	"stagecast/internal/shared/logger"
)

type InvalidateRefreshTokenCommand struct {
	RefreshToken string

	// Everywhere revokes all of the owning user's refresh tokens,
	// logging the user out of every device.
	Everywhere bool
}

// InvalidateRefreshTokenUseCase revokes a refresh token. Revocation is
// idempotent: revoking an unknown or already-revoked token succeeds.
type InvalidateRefreshTokenUseCase struct {
	refreshTokens auth.RefreshTokenRepository
	logger        logger.Interface
}

func NewInvalidateRefreshTokenUseCase(
	refreshTokens auth.RefreshTokenRepository,
	logger logger.Interface,
) *InvalidateRefreshTokenUseCase {
	return &InvalidateRefreshTokenUseCase{
		refreshTokens: refreshTokens,
		logger:        logger,
	}
}

func (uc *InvalidateRefreshTokenUseCase) Execute(ctx context.Context, cmd InvalidateRefreshTokenCommand) error {
	if cmd.RefreshToken == "" {
		return nil
	}

	if cmd.Everywhere {
		record, err := uc.refreshTokens.GetByToken(ctx, cmd.RefreshToken)
		if err != nil {
			return fmt.Errorf("failed to look up refresh token: %w", err)
		}
		if record == nil {
			return nil
		}
		if err := uc.refreshTokens.DeleteByUserID(ctx, record.UserID); err != nil {
			return fmt.Errorf("failed to revoke refresh tokens: %w", err)
		}
		uc.logger.Infow("all refresh tokens revoked", "user_id", record.UserID)
		return nil
	}

	if err := uc.refreshTokens.Delete(ctx, cmd.RefreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	uc.logger.Infow("refresh token revoked")
	return nil
}
