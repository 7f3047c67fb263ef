package usecases

import (
	"context"
	"fmt"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
	"stagecast/internal/shared/logger"
)

type ListInvitesCommand struct {
	Actor *user.User
}

type ListInvitesResult struct {
	Invites []InviteDTO
}

// ListInvitesUseCase lists the invites addressed to the current user,
// each with its stage attached.
type ListInvitesUseCase struct {
	invites stage.InviteRepository
	stages  stage.Repository
	users   user.Repository
	logger  logger.Interface
}

func NewListInvitesUseCase(
	invites stage.InviteRepository,
	stages stage.Repository,
	users user.Repository,
	logger logger.Interface,
) *ListInvitesUseCase {
	return &ListInvitesUseCase{
		invites: invites,
		stages:  stages,
		users:   users,
		logger:  logger,
	}
}

func (uc *ListInvitesUseCase) Execute(ctx context.Context, cmd ListInvitesCommand) (*ListInvitesResult, error) {
	invites, err := uc.invites.ListByUserID(ctx, cmd.Actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}

	dtos := make([]InviteDTO, 0, len(invites))
	for _, invite := range invites {
		s, ownerSID, err := resolveStage(ctx, uc.stages, uc.users, invite.StageID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve stage: %w", err)
		}
		if s == nil {
			continue
		}
		dtos = append(dtos, newInviteDTO(invite, cmd.Actor.SID, s, ownerSID))
	}

	return &ListInvitesResult{Invites: dtos}, nil
}
