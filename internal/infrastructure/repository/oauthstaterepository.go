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

// OAuthStateRepository implements the OAuth state repository backed by GORM
type OAuthStateRepository struct {
	db     *gorm.DB
	mapper mappers.AuthMapper
	logger logger.Interface
}

// NewOAuthStateRepository creates a new OAuth state repository
func NewOAuthStateRepository(db *gorm.DB, logger logger.Interface) auth.OAuthStateRepository {
	return &OAuthStateRepository{
		db:     db,
		mapper: mappers.NewAuthMapper(),
		logger: logger,
	}
}

func (r *OAuthStateRepository) Create(ctx context.Context, state *auth.OAuthState) error {
	model := r.mapper.StateToModel(state)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create oauth state", "error", err)
		return fmt.Errorf("failed to create oauth state: %w", err)
	}
	return nil
}

func (r *OAuthStateRepository) GetByToken(ctx context.Context, token string) (*auth.OAuthState, error) {
	var model models.OAuthStateModel

	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get oauth state", "error", err)
		return nil, fmt.Errorf("failed to get oauth state: %w", err)
	}

	return r.mapper.StateToEntity(&model), nil
}

// Delete removes the state row. RowsAffected distinguishes the winner
// when multiple callbacks race for the same nonce.
func (r *OAuthStateRepository) Delete(ctx context.Context, token string) (bool, error) {
	result := r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.OAuthStateModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete oauth state", "error", result.Error)
		return false, fmt.Errorf("failed to delete oauth state: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
