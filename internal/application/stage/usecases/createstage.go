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

// PasswordHasher hashes stage passwords before persistence.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type CreateStageCommand struct {
	Name     string
	Color    string
	Private  bool
	Password string
	Owner    *user.User
}

type CreateStageResult struct {
	Stage StageDTO
}

type CreateStageUseCase struct {
	stages stage.Repository
	hasher PasswordHasher
	logger logger.Interface
}

func NewCreateStageUseCase(stages stage.Repository, hasher PasswordHasher, logger logger.Interface) *CreateStageUseCase {
	return &CreateStageUseCase{
		stages: stages,
		hasher: hasher,
		logger: logger,
	}
}

func (uc *CreateStageUseCase) Execute(ctx context.Context, cmd CreateStageCommand) (*CreateStageResult, error) {
	sid, err := id.NewStageID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate stage ID: %w", err)
	}

	entity, err := stage.NewStage(sid, cmd.Name, cmd.Color, cmd.Private, cmd.Owner.ID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if cmd.Password != "" {
		hash, err := uc.hasher.Hash(cmd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		entity.SetPasswordHash(hash)
	}

	if err := uc.stages.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to create stage: %w", err)
	}

	uc.logger.Infow("stage created", "stage_sid", entity.SID, "owner_sid", cmd.Owner.SID)

	return &CreateStageResult{Stage: newStageDTO(entity, cmd.Owner.SID)}, nil
}
