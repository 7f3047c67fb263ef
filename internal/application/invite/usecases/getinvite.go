package usecases

import (
	"context"
	"fmt"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
	apperrors "stagecast/internal/shared/errors"
	"stagecast/internal/shared/logger"
)

type GetInviteCommand struct {
	Actor     *user.User
	InviteSID string
}

type GetInviteResult struct {
	Invite InviteDTO
}

// GetInviteUseCase looks up one of the current user's invites. Invites
// addressed to other users read as not found.
type GetInviteUseCase struct {
	invites stage.InviteRepository
	stages  stage.Repository
	users   user.Repository
	logger  logger.Interface
}

func NewGetInviteUseCase(
	invites stage.InviteRepository,
	stages stage.Repository,
	users user.Repository,
	logger logger.Interface,
) *GetInviteUseCase {
	return &GetInviteUseCase{
		invites: invites,
		stages:  stages,
		users:   users,
		logger:  logger,
	}
}

func (uc *GetInviteUseCase) Execute(ctx context.Context, cmd GetInviteCommand) (*GetInviteResult, error) {
	invite, err := uc.invites.GetBySID(ctx, cmd.InviteSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}
	if invite == nil || invite.UserID != cmd.Actor.ID {
		return nil, apperrors.NewNotFoundError("Invite not found")
	}

	s, ownerSID, err := resolveStage(ctx, uc.stages, uc.users, invite.StageID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stage: %w", err)
	}
	if s == nil {
		return nil, apperrors.NewNotFoundError("Invite not found")
	}

	return &GetInviteResult{
		Invite: newInviteDTO(invite, cmd.Actor.SID, s, ownerSID),
	}, nil
}
