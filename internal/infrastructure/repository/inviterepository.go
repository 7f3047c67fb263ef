package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"stagecast/internal/domain/stage"
	"stagecast/internal/infrastructure/persistence/mappers"
	"stagecast/internal/infrastructure/persistence/models"
	"stagecast/internal/shared/logger"
)

// InviteRepository implements the invite repository interface backed by GORM
type InviteRepository struct {
	db     *gorm.DB
	mapper mappers.StageMapper
	logger logger.Interface
}

// NewInviteRepository creates a new invite repository
func NewInviteRepository(db *gorm.DB, logger logger.Interface) stage.InviteRepository {
	return &InviteRepository{
		db:     db,
		mapper: mappers.NewStageMapper(),
		logger: logger,
	}
}

func (r *InviteRepository) Create(ctx context.Context, invite *stage.Invite) error {
	model := r.mapper.InviteToModel(invite)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create invite", "stage_id", invite.StageID, "error", err)
		return fmt.Errorf("failed to create invite: %w", err)
	}

	invite.ID = model.ID
	return nil
}

func (r *InviteRepository) GetBySID(ctx context.Context, sid string) (*stage.Invite, error) {
	var model models.InviteModel

	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get invite by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	return r.mapper.InviteToEntity(&model), nil
}

func (r *InviteRepository) ListByUserID(ctx context.Context, userID uint) ([]*stage.Invite, error) {
	var inviteModels []*models.InviteModel

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&inviteModels).Error; err != nil {
		r.logger.Errorw("failed to list invites", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}

	return r.mapper.InvitesToEntities(inviteModels), nil
}

func (r *InviteRepository) Exists(ctx context.Context, stageID, userID uint) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.InviteModel{}).
		Where("stage_id = ? AND user_id = ?", stageID, userID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to check invite existence", "stage_id", stageID, "user_id", userID, "error", err)
		return false, fmt.Errorf("failed to check invite: %w", err)
	}

	return count > 0, nil
}

func (r *InviteRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.InviteModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete invite", "id", id, "error", err)
		return fmt.Errorf("failed to delete invite: %w", err)
	}
	return nil
}
