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

// ChatMessageRepository implements the chat message repository backed by GORM
type ChatMessageRepository struct {
	db     *gorm.DB
	mapper mappers.StageMapper
	logger logger.Interface
}

// NewChatMessageRepository creates a new chat message repository
func NewChatMessageRepository(db *gorm.DB, logger logger.Interface) stage.ChatMessageRepository {
	return &ChatMessageRepository{
		db:     db,
		mapper: mappers.NewStageMapper(),
		logger: logger,
	}
}

func (r *ChatMessageRepository) Create(ctx context.Context, message *stage.ChatMessage) error {
	model := r.mapper.MessageToModel(message)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create chat message", "stage_id", message.StageID, "error", err)
		return fmt.Errorf("failed to create chat message: %w", err)
	}

	message.ID = model.ID
	return nil
}

func (r *ChatMessageRepository) ListByStageID(ctx context.Context, stageID uint, limit int) ([]*stage.ChatMessage, error) {
	var messageModels []*models.ChatMessageModel

	if limit <= 0 {
		limit = 100
	}

	err := r.db.WithContext(ctx).
		Where("stage_id = ?", stageID).
		Order("created_at asc").
		Limit(limit).
		Find(&messageModels).Error
	if err != nil {
		r.logger.Errorw("failed to list chat messages", "stage_id", stageID, "error", err)
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}

	return r.mapper.MessagesToEntities(messageModels), nil
}
