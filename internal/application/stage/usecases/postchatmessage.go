package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
	"stagecast/internal/infrastructure/livekit"
	apperrors "stagecast/internal/shared/errors"
	"stagecast/internal/shared/id"
	"stagecast/internal/shared/logger"
)

type PostChatMessageCommand struct {
	StageSID string
	Actor    *user.User
	Message  string
}

type PostChatMessageResult struct {
	Message ChatMessageDTO
}

// PostChatMessageUseCase persists a text chat message and broadcasts it
// to everyone in the room. Content is sanitized before storage.
type PostChatMessageUseCase struct {
	stages    stage.Repository
	messages  stage.ChatMessageRepository
	rooms     livekit.RoomClient
	sanitizer *bluemonday.Policy
	logger    logger.Interface
}

func NewPostChatMessageUseCase(
	stages stage.Repository,
	messages stage.ChatMessageRepository,
	rooms livekit.RoomClient,
	logger logger.Interface,
) *PostChatMessageUseCase {
	return &PostChatMessageUseCase{
		stages:    stages,
		messages:  messages,
		rooms:     rooms,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

func (uc *PostChatMessageUseCase) Execute(ctx context.Context, cmd PostChatMessageCommand) (*PostChatMessageResult, error) {
	text := strings.TrimSpace(cmd.Message)
	if text == "" {
		return nil, apperrors.NewMissingParameterError("message")
	}
	if len(text) > stage.MaxMessageLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Message must be less than %d chars", stage.MaxMessageLength))
	}

	entity, err := uc.stages.GetBySID(ctx, cmd.StageSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stage: %w", err)
	}
	if entity == nil {
		return nil, apperrors.NewNotFoundError("Stage not found")
	}

	sid, err := id.Generate(id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate message ID: %w", err)
	}

	msg, err := stage.NewTextMessage(sid, entity.ID, cmd.Actor.ID, uc.sanitizer.Sanitize(text))
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store chat message: %w", err)
	}

	dto := newChatMessageDTO(msg, entity.SID, cmd.Actor.Safe())
	broadcastChatMessage(ctx, uc.rooms, uc.logger, entity.SID, dto)

	return &PostChatMessageResult{Message: dto}, nil
}
