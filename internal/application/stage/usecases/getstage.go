package usecases

import (
	"context"
	"fmt"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
	apperrors "stagecast/internal/shared/errors"
	"stagecast/internal/shared/logger"
)

type GetStageCommand struct {
	StageSID string
	// Actor is nil for anonymous requests; private stages are then hidden.
	Actor *user.User
}

type GetStageResult struct {
	Stage StageDTO
}

type GetStageUseCase struct {
	stages  stage.Repository
	invites stage.InviteRepository
	users   user.Repository
	logger  logger.Interface
}

func NewGetStageUseCase(stages stage.Repository, invites stage.InviteRepository, users user.Repository, logger logger.Interface) *GetStageUseCase {
	return &GetStageUseCase{
		stages:  stages,
		invites: invites,
		users:   users,
		logger:  logger,
	}
}

func (uc *GetStageUseCase) Execute(ctx context.Context, cmd GetStageCommand) (*GetStageResult, error) {
	entity, err := uc.stages.GetBySID(ctx, cmd.StageSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stage: %w", err)
	}
	if entity == nil {
		return nil, apperrors.NewNotFoundError("Stage not found")
	}

	if entity.Private {
		accessible, err := hasStageAccess(ctx, uc.invites, entity, cmd.Actor)
		if err != nil {
			return nil, err
		}
		if !accessible {
			return nil, apperrors.NewForbiddenError("You don't have access to this stage")
		}
	}

	owner, err := uc.users.GetByID(ctx, entity.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve owner: %w", err)
	}
	ownerSID := ""
	if owner != nil {
		ownerSID = owner.SID
	}

	return &GetStageResult{Stage: newStageDTO(entity, ownerSID)}, nil
}

// hasStageAccess reports whether the actor may enter the stage: the
// owner always, invited users always, everyone for public stages.
func hasStageAccess(ctx context.Context, invites stage.InviteRepository, s *stage.Stage, actor *user.User) (bool, error) {
	if !s.Private {
		return true, nil
	}
	if actor == nil {
		return false, nil
	}
	if s.IsOwnedBy(actor.ID) {
		return true, nil
	}
	invited, err := invites.Exists(ctx, s.ID, actor.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check invite: %w", err)
	}
	return invited, nil
}
