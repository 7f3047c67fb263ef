package usecases

import (
	"context"
	"fmt"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
	"stagecast/internal/infrastructure/livekit"
	apperrors "stagecast/internal/shared/errors"
	"stagecast/internal/shared/id"
	"stagecast/internal/shared/logger"
)

type RequestToSpeakCommand struct {
	StageSID string
	Actor    *user.User
}

type RequestToSpeakResult struct {
	Message ChatMessageDTO
}

// RequestToSpeakUseCase records a listener's request to speak as an
// EVENT chat entry and broadcasts it so the owner can act on it.
type RequestToSpeakUseCase struct {
	stages   stage.Repository
	messages stage.ChatMessageRepository
	rooms    livekit.RoomClient
	logger   logger.Interface
}

func NewRequestToSpeakUseCase(
	stages stage.Repository,
	messages stage.ChatMessageRepository,
	rooms livekit.RoomClient,
	logger logger.Interface,
) *RequestToSpeakUseCase {
	return &RequestToSpeakUseCase{
		stages:   stages,
		messages: messages,
		rooms:    rooms,
		logger:   logger,
	}
}

func (uc *RequestToSpeakUseCase) Execute(ctx context.Context, cmd RequestToSpeakCommand) (*RequestToSpeakResult, error) {
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

	msg, err := stage.NewEventMessage(sid, entity.ID, cmd.Actor.ID, stage.EventRequestToSpeak)
	if err != nil {
		return nil, fmt.Errorf("failed to create event message: %w", err)
	}
	if err := uc.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store event message: %w", err)
	}

	dto := newChatMessageDTO(msg, entity.SID, cmd.Actor.Safe())
	broadcastChatMessage(ctx, uc.rooms, uc.logger, entity.SID, dto)

	return &RequestToSpeakResult{Message: dto}, nil
}
