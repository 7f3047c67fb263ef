package usecases

import (
	"context"
	"fmt"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
	apperrors "stagecast/internal/shared/errors"
	"stagecast/internal/shared/logger"
)

const chatHistoryLimit = 100

type GetChatHistoryCommand struct {
	StageSID string
}

type GetChatHistoryResult struct {
	Messages []ChatMessageDTO
}

// GetChatHistoryUseCase returns the oldest hundred messages of a stage's
// chat. Room membership is enforced by the media grant middleware before
// this use case runs.
type GetChatHistoryUseCase struct {
	stages   stage.Repository
	messages stage.ChatMessageRepository
	users    user.Repository
	logger   logger.Interface
}

func NewGetChatHistoryUseCase(
	stages stage.Repository,
	messages stage.ChatMessageRepository,
	users user.Repository,
	logger logger.Interface,
) *GetChatHistoryUseCase {
	return &GetChatHistoryUseCase{
		stages:   stages,
		messages: messages,
		users:    users,
		logger:   logger,
	}
}

func (uc *GetChatHistoryUseCase) Execute(ctx context.Context, cmd GetChatHistoryCommand) (*GetChatHistoryResult, error) {
	entity, err := uc.stages.GetBySID(ctx, cmd.StageSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stage: %w", err)
	}
	if entity == nil {
		return nil, apperrors.NewNotFoundError("Stage not found")
	}

	messages, err := uc.messages.ListByStageID(ctx, entity.ID, chatHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}

	authors := make(map[uint]user.SafeUser)
	dtos := make([]ChatMessageDTO, 0, len(messages))
	for _, msg := range messages {
		author, ok := authors[msg.UserID]
		if !ok {
			u, err := uc.users.GetByID(ctx, msg.UserID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve author: %w", err)
			}
			if u != nil {
				author = u.Safe()
			}
			authors[msg.UserID] = author
		}
		dtos = append(dtos, newChatMessageDTO(msg, entity.SID, author))
	}

	return &GetChatHistoryResult{Messages: dtos}, nil
}
