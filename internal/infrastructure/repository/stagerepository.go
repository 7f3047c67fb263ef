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

// allowedStageOrderByFields defines the whitelist of allowed ORDER BY
// fields to prevent SQL injection attacks.
var allowedStageOrderByFields = map[string]bool{
	"id":         true,
	"sid":        true,
	"name":       true,
	"created_at": true,
	"updated_at": true,
}

// StageRepository implements the stage repository interface backed by GORM
type StageRepository struct {
	db     *gorm.DB
	mapper mappers.StageMapper
	logger logger.Interface
}

// NewStageRepository creates a new stage repository
func NewStageRepository(db *gorm.DB, logger logger.Interface) stage.Repository {
	return &StageRepository{
		db:     db,
		mapper: mappers.NewStageMapper(),
		logger: logger,
	}
}

func (r *StageRepository) Create(ctx context.Context, entity *stage.Stage) error {
	model := r.mapper.ToModel(entity)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create stage", "error", err)
		return fmt.Errorf("failed to create stage: %w", err)
	}

	entity.ID = model.ID
	return nil
}

func (r *StageRepository) GetByID(ctx context.Context, id uint) (*stage.Stage, error) {
	var model models.StageModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get stage by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get stage: %w", err)
	}

	return r.mapper.ToEntity(&model), nil
}

func (r *StageRepository) GetBySID(ctx context.Context, sid string) (*stage.Stage, error) {
	var model models.StageModel

	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get stage by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get stage: %w", err)
	}

	return r.mapper.ToEntity(&model), nil
}

func (r *StageRepository) Update(ctx context.Context, entity *stage.Stage) error {
	model := r.mapper.ToModel(entity)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update stage", "id", entity.ID, "error", err)
		return fmt.Errorf("failed to update stage: %w", err)
	}
	return nil
}

func (r *StageRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.StageModel{}, id).Error; err != nil {
		r.logger.Errorw("failed to delete stage", "id", id, "error", err)
		return fmt.Errorf("failed to delete stage: %w", err)
	}
	return nil
}

func (r *StageRepository) ListPublic(ctx context.Context, filter stage.ListFilter) ([]*stage.Stage, error) {
	var stageModels []*models.StageModel

	query := r.db.WithContext(ctx).Where("private = ?", false)
	query = applyStageFilter(query, filter)

	if err := query.Find(&stageModels).Error; err != nil {
		r.logger.Errorw("failed to list public stages", "error", err)
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}

	return r.mapper.ToEntities(stageModels), nil
}

func (r *StageRepository) ListPublicByOwner(ctx context.Context, ownerID uint, filter stage.ListFilter) ([]*stage.Stage, error) {
	var stageModels []*models.StageModel

	query := r.db.WithContext(ctx).Where("private = ? AND owner_id = ?", false, ownerID)
	query = applyStageFilter(query, filter)

	if err := query.Find(&stageModels).Error; err != nil {
		r.logger.Errorw("failed to list stages by owner", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}

	return r.mapper.ToEntities(stageModels), nil
}

func (r *StageRepository) ListAccessible(ctx context.Context, userID uint, filter stage.ListFilter) ([]*stage.Stage, error) {
	var stageModels []*models.StageModel

	query := r.db.WithContext(ctx).
		Where("owner_id = ? OR id IN (?)",
			userID,
			r.db.Model(&models.InviteModel{}).Select("stage_id").Where("user_id = ?", userID),
		)
	query = applyStageFilter(query, filter)

	if err := query.Find(&stageModels).Error; err != nil {
		r.logger.Errorw("failed to list accessible stages", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}

	return r.mapper.ToEntities(stageModels), nil
}

func (r *StageRepository) ListAccessibleByOwner(ctx context.Context, userID, ownerID uint, filter stage.ListFilter) ([]*stage.Stage, error) {
	var stageModels []*models.StageModel

	query := r.db.WithContext(ctx).
		Where("owner_id = ? OR (owner_id = ? AND id IN (?))",
			userID,
			ownerID,
			r.db.Model(&models.InviteModel{}).Select("stage_id").Where("user_id = ?", userID),
		)
	query = applyStageFilter(query, filter)

	if err := query.Find(&stageModels).Error; err != nil {
		r.logger.Errorw("failed to list accessible stages by owner", "user_id", userID, "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}

	return r.mapper.ToEntities(stageModels), nil
}

func applyStageFilter(query *gorm.DB, filter stage.ListFilter) *gorm.DB {
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	sort := filter.Sort
	if !allowedStageOrderByFields[sort] {
		sort = "created_at"
	}
	order := filter.SortOrder
	if order != "asc" && order != "desc" {
		order = "desc"
	}

	return query.
		Order(fmt.Sprintf("%s %s", sort, order)).
		Limit(limit).
		Offset(filter.Offset)
}
