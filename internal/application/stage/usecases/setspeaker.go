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

type SetSpeakerCommand struct {
	StageSID string
	Actor    *user.User
	// TargetUserSID identifies the participant whose permissions change.
	TargetUserSID string
	// Speaker grants publish permission when true, revokes it otherwise.
	Speaker bool
}

type SetSpeakerResult struct {
	Message ChatMessageDTO
}

// SetSpeakerUseCase lets the stage owner promote a participant to
// speaker or demote them back to listener. The permission change goes to
// the media server and an EVENT entry is broadcast so clients update.
type SetSpeakerUseCase struct {
	stages   stage.Repository
	messages stage.ChatMessageRepository
	users    user.Repository
	rooms    livekit.RoomClient
	logger   logger.Interface
}

func NewSetSpeakerUseCase(
	stages stage.Repository,
	messages stage.ChatMessageRepository,
	users user.Repository,
	rooms livekit.RoomClient,
	logger logger.Interface,
) *SetSpeakerUseCase {
	return &SetSpeakerUseCase{
		stages:   stages,
		messages: messages,
		users:    users,
		rooms:    rooms,
		logger:   logger,
	}
}

func (uc *SetSpeakerUseCase) Execute(ctx context.Context, cmd SetSpeakerCommand) (*SetSpeakerResult, error) {
	if cmd.TargetUserSID == "" {
		return nil, apperrors.NewMissingParameterError("user_id")
	}

	entity, err := uc.stages.GetBySID(ctx, cmd.StageSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stage: %w", err)
	}
	if entity == nil {
		return nil, apperrors.NewNotFoundError("Stage not found")
	}
	if !entity.IsOwnedBy(cmd.Actor.ID) {
		return nil, apperrors.NewForbiddenError("You are not the owner")
	}

	target, err := uc.users.GetBySID(ctx, cmd.TargetUserSID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if target == nil {
		return nil, apperrors.NewNotFoundError("User not found")
	}

	if err := uc.rooms.UpdateParticipant(ctx, entity.SID, target.SID, cmd.Speaker); err != nil {
		return nil, fmt.Errorf("failed to update participant: %w", err)
	}

	event := stage.EventMadeListener
	if cmd.Speaker {
		event = stage.EventMadeSpeaker
	}

	sid, err := id.Generate(id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate message ID: %w", err)
	}

	msg, err := stage.NewEventMessage(sid, entity.ID, target.ID, event)
	if err != nil {
		return nil, fmt.Errorf("failed to create event message: %w", err)
	}
	if err := uc.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store event message: %w", err)
	}

	uc.logger.Infow("participant permissions updated",
		"stage_sid", entity.SID,
		"target_sid", target.SID,
		"speaker", cmd.Speaker)

	dto := newChatMessageDTO(msg, entity.SID, target.Safe())
	broadcastChatMessage(ctx, uc.rooms, uc.logger, entity.SID, dto)

	return &SetSpeakerResult{Message: dto}, nil
}
