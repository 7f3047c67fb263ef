package usecases

import (
	"context"
	"fmt"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
	apperrors "stagecast/internal/shared/errors"
	"stagecast/internal/shared/logger"
)

type UpdateStageCommand struct {
	StageSID string
	Actor    *user.User

	Name    string
	Color   string
	Private bool

	// UsePassword marks that Password carries a new value; an empty
	// Password with UsePassword set clears the stage password.
	UsePassword bool
	Password    string
}

type UpdateStageResult struct {
	Stage StageDTO
}

type UpdateStageUseCase struct {
	stages stage.Repository
	hasher PasswordHasher
	logger logger.Interface
}

func NewUpdateStageUseCase(stages stage.Repository, hasher PasswordHasher, logger logger.Interface) *UpdateStageUseCase {
	return &UpdateStageUseCase{
		stages: stages,
		hasher: hasher,
		logger: logger,
	}
}

func (uc *UpdateStageUseCase) Execute(ctx context.Context, cmd UpdateStageCommand) (*UpdateStageResult, error) {
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

	if cmd.Name != "" {
		if err := entity.Rename(cmd.Name); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if cmd.Color != "" {
		if err := entity.SetColor(cmd.Color); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	entity.SetPrivate(cmd.Private)

	if cmd.UsePassword {
		if cmd.Password == "" {
			entity.SetPasswordHash("")
		} else {
			hash, err := uc.hasher.Hash(cmd.Password)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password: %w", err)
			}
			entity.SetPasswordHash(hash)
		}
	}

	if err := uc.stages.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to update stage: %w", err)
	}

	uc.logger.Infow("stage updated", "stage_sid", entity.SID)

	return &UpdateStageResult{Stage: newStageDTO(entity, cmd.Actor.SID)}, nil
}
