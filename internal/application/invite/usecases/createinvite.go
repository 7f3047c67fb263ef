package usecases

import (
	"context"
	"fmt"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
	apperrors "stagecast/internal/shared/errors"
	"stagecast/internal/shared/id"
	"stagecast/internal/shared/logger"
)

type CreateInviteCommand struct {
	Actor         *user.User
	StageSID      string
	TargetUserSID string
}

type CreateInviteResult struct {
	Invite InviteDTO
}

// CreateInviteUseCase invites a user to a stage. Only the stage owner
// may invite, and never themselves.
type CreateInviteUseCase struct {
	invites stage.InviteRepository
	stages  stage.Repository
	users   user.Repository
	logger  logger.Interface
}

func NewCreateInviteUseCase(
	invites stage.InviteRepository,
	stages stage.Repository,
	users user.Repository,
	logger logger.Interface,
) *CreateInviteUseCase {
	return &CreateInviteUseCase{
		invites: invites,
		stages:  stages,
		users:   users,
		logger:  logger,
	}
}

func (uc *CreateInviteUseCase) Execute(ctx context.Context, cmd CreateInviteCommand) (*CreateInviteResult, error) {
	if cmd.TargetUserSID == cmd.Actor.SID {
		return nil, apperrors.NewBadRequestError("You can't invite yourself")
	}

	entity, err := uc.stages.GetBySID(ctx, cmd.StageSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stage: %w", err)
	}
	// Non-owners learn nothing about the stage's existence.
	if entity == nil || !entity.IsOwnedBy(cmd.Actor.ID) {
		return nil, apperrors.NewNotFoundError("Stage not found")
	}

	target, err := uc.users.GetBySID(ctx, cmd.TargetUserSID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if target == nil {
		return nil, apperrors.NewNotFoundError("User not found")
	}

	exists, err := uc.invites.Exists(ctx, entity.ID, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check invite: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("User is already invited")
	}

	sid, err := id.Generate(id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite ID: %w", err)
	}

	invite, err := stage.NewInvite(sid, entity.ID, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	if err := uc.invites.Create(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to store invite: %w", err)
	}

	uc.logger.Infow("invite created",
		"stage_sid", entity.SID,
		"target_sid", target.SID)

	return &CreateInviteResult{
		Invite: newInviteDTO(invite, target.SID, entity, cmd.Actor.SID),
	}, nil
}
