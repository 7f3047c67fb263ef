package usecases

import (
	"context"
	"fmt"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
	apperrors "stagecast/internal/shared/errors"
	"stagecast/internal/shared/logger"
)

type DeleteInviteCommand struct {
	Actor     *user.User
	InviteSID string
}

type DeleteInviteResult struct {
	Invite InviteDTO
}

// DeleteInviteUseCase lets the invited user decline or discard one of
// their invites.
type DeleteInviteUseCase struct {
	invites stage.InviteRepository
	stages  stage.Repository
	users   user.Repository
	logger  logger.Interface
}

func NewDeleteInviteUseCase(
	invites stage.InviteRepository,
	stages stage.Repository,
	users user.Repository,
	logger logger.Interface,
) *DeleteInviteUseCase {
	return &DeleteInviteUseCase{
		invites: invites,
		stages:  stages,
		users:   users,
		logger:  logger,
	}
}

func (uc *DeleteInviteUseCase) Execute(ctx context.Context, cmd DeleteInviteCommand) (*DeleteInviteResult, error) {
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

	if err := uc.invites.Delete(ctx, invite.ID); err != nil {
		return nil, fmt.Errorf("failed to delete invite: %w", err)
	}

	uc.logger.Infow("invite deleted", "invite_sid", invite.SID)

	result := &DeleteInviteResult{}
	if s != nil {
		result.Invite = newInviteDTO(invite, cmd.Actor.SID, s, ownerSID)
	}
	return result, nil
}
