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

// ExchangeCodeRepository implements the exchange code repository backed by GORM
type ExchangeCodeRepository struct {
	db     *gorm.DB
	mapper mappers.AuthMapper
	logger logger.Interface
}

// NewExchangeCodeRepository creates a new exchange code repository
func NewExchangeCodeRepository(db *gorm.DB, logger logger.Interface) auth.ExchangeCodeRepository {
	return &ExchangeCodeRepository{
		db:     db,
		mapper: mappers.NewAuthMapper(),
		logger: logger,
	}
}

func (r *ExchangeCodeRepository) Create(ctx context.Context, code *auth.ExchangeCode) error {
	model := r.mapper.ExchangeCodeToModel(code)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create exchange code", "user_id", code.UserID, "error", err)
		return fmt.Errorf("failed to create exchange code: %w", err)
	}
	return nil
}

func (r *ExchangeCodeRepository) GetByCode(ctx context.Context, code string) (*auth.ExchangeCode, error) {
	var model models.ExchangeCodeModel

	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get exchange code", "error", err)
		return nil, fmt.Errorf("failed to get exchange code: %w", err)
	}

	return r.mapper.ExchangeCodeToEntity(&model), nil
}

// Delete removes the code row. RowsAffected makes redemption race-safe:
// of two concurrent redeemers, exactly one observes true.
func (r *ExchangeCodeRepository) Delete(ctx context.Context, code string) (bool, error) {
	result := r.db.WithContext(ctx).Where("code = ?", code).Delete(&models.ExchangeCodeModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete exchange code", "error", result.Error)
		return false, fmt.Errorf("failed to delete exchange code: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
