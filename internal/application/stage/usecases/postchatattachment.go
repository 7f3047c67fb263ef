package usecases

import (
	"context"
	"fmt"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
	"stagecast/internal/infrastructure/livekit"
	"stagecast/internal/infrastructure/storage"
	apperrors "stagecast/internal/shared/errors"
	"stagecast/internal/shared/id"
	"stagecast/internal/shared/logger"
)

// MaxAttachmentSize is the upload limit for chat attachments.
const MaxAttachmentSize = 2 << 20 // 2 MiB

type PostChatAttachmentCommand struct {
	StageSID    string
	Actor       *user.User
	Filename    string
	ContentType string
	Data        []byte
}

type PostChatAttachmentResult struct {
	Message ChatMessageDTO
}

// PostChatAttachmentUseCase uploads a file to blob storage and records
// it as a FILE chat message carrying the public URL.
type PostChatAttachmentUseCase struct {
	stages   stage.Repository
	messages stage.ChatMessageRepository
	rooms    livekit.RoomClient
	uploader storage.Uploader
	logger   logger.Interface
}

func NewPostChatAttachmentUseCase(
	stages stage.Repository,
	messages stage.ChatMessageRepository,
	rooms livekit.RoomClient,
	uploader storage.Uploader,
	logger logger.Interface,
) *PostChatAttachmentUseCase {
	return &PostChatAttachmentUseCase{
		stages:   stages,
		messages: messages,
		rooms:    rooms,
		uploader: uploader,
		logger:   logger,
	}
}

func (uc *PostChatAttachmentUseCase) Execute(ctx context.Context, cmd PostChatAttachmentCommand) (*PostChatAttachmentResult, error) {
	if len(cmd.Data) == 0 {
		return nil, apperrors.NewMissingParameterError("file")
	}
	if len(cmd.Data) > MaxAttachmentSize {
		return nil, apperrors.NewValidationError("File must be less than 2MiB")
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

	// Prefix the object key with the message SID so concurrent uploads of
	// the same filename never collide.
	key := fmt.Sprintf("%s/%s/%s", entity.SID, sid, cmd.Filename)
	url, err := uc.uploader.Upload(ctx, key, cmd.Data, cmd.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	msg, err := stage.NewFileMessage(sid, entity.ID, cmd.Actor.ID, url, &stage.FileMeta{
		Name:        cmd.Filename,
		ContentType: cmd.ContentType,
		Size:        int64(len(cmd.Data)),
	})
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store chat message: %w", err)
	}

	uc.logger.Infow("chat attachment uploaded", "stage_sid", entity.SID, "size", len(cmd.Data))

	dto := newChatMessageDTO(msg, entity.SID, cmd.Actor.Safe())
	broadcastChatMessage(ctx, uc.rooms, uc.logger, entity.SID, dto)

	return &PostChatAttachmentResult{Message: dto}, nil
}
