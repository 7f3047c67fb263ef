package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"stagecast/internal/domain/auth"
	"stagecast/internal/infrastructure/persistence/mappers"
	"stagecast/internal/infrastructure/persistence/models"
	"stagecast/internal/shared/logger"
)

// RefreshTokenRepository implements the refresh token repository backed by GORM
type RefreshTokenRepository struct {
	db     *gorm.DB
	mapper mappers.AuthMapper
	logger logger.Interface
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB, logger logger.Interface) auth.RefreshTokenRepository {
	return &RefreshTokenRepository{
		db:     db,
		mapper: mappers.NewAuthMapper(),
		logger: logger,
	}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *auth.RefreshToken) error {
	model := r.mapper.RefreshTokenToModel(token)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create refresh token", "user_id", token.UserID, "error", err)
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	var model models.RefreshTokenModel

	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get refresh token", "error", err)
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return r.mapper.RefreshTokenToEntity(&model), nil
}

// Delete removes the token row. Deleting an absent row succeeds so
// revocation stays idempotent.
func (r *RefreshTokenRepository) Delete(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.RefreshTokenModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete refresh token", "error", err)
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RefreshTokenModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete refresh tokens for user", "user_id", userID, "error", err)
		return fmt.Errorf("failed to delete refresh tokens: %w", err)
	}
	return nil
}
