package usecases

import (
	"context"
	"fmt"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
	apperrors "stagecast/internal/shared/errors"
	"stagecast/internal/shared/logger"
)

type DeleteStageCommand struct {
	StageSID string
	Actor    *user.User
}

type DeleteStageResult struct {
	Stage StageDTO
}

type DeleteStageUseCase struct {
	stages stage.Repository
	logger logger.Interface
}

func NewDeleteStageUseCase(stages stage.Repository, logger logger.Interface) *DeleteStageUseCase {
	return &DeleteStageUseCase{
		stages: stages,
		logger: logger,
	}
}

func (uc *DeleteStageUseCase) Execute(ctx context.Context, cmd DeleteStageCommand) (*DeleteStageResult, error) {
	entity, err := uc.stages.GetBySID(ctx, cmd.StageSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stage: %w", err)
	}
	if entity == nil {
		return nil, apperrors.NewNotFoundError("Stage not found")
	}
	if !entity.IsOwnedBy(cmd.Actor.ID) {
		return nil, apperrors.NewForbiddenError("You don't have access to this stage")
	}

	if err := uc.stages.Delete(ctx, entity.ID); err != nil {
		return nil, fmt.Errorf("failed to delete stage: %w", err)
	}

	uc.logger.Infow("stage deleted", "stage_sid", entity.SID)

	return &DeleteStageResult{Stage: newStageDTO(entity, cmd.Actor.SID)}, nil
}
