package usecases

import (
	"context"
	"fmt"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
	"stagecast/internal/shared/logger"
)

type ListStagesCommand struct {
	Filter stage.ListFilter
	// OwnerSID optionally narrows the listing to one owner's stages.
	OwnerSID string
}

type ListStagesResult struct {
	Stages []StageDTO
}

// ListPublicStagesUseCase lists non-private stages, optionally scoped to
// a single owner. No authentication is required.
type ListPublicStagesUseCase struct {
	stages stage.Repository
	users  user.Repository
	logger logger.Interface
}

func NewListPublicStagesUseCase(stages stage.Repository, users user.Repository, logger logger.Interface) *ListPublicStagesUseCase {
	return &ListPublicStagesUseCase{
		stages: stages,
		users:  users,
		logger: logger,
	}
}

func (uc *ListPublicStagesUseCase) Execute(ctx context.Context, cmd ListStagesCommand) (*ListStagesResult, error) {
	var (
		entities []*stage.Stage
		err      error
	)

	if cmd.OwnerSID != "" {
		owner, ownerErr := uc.users.GetBySID(ctx, cmd.OwnerSID)
		if ownerErr != nil {
			return nil, fmt.Errorf("failed to resolve owner: %w", ownerErr)
		}
		if owner == nil {
			return &ListStagesResult{Stages: []StageDTO{}}, nil
		}
		entities, err = uc.stages.ListPublicByOwner(ctx, owner.ID, cmd.Filter)
	} else {
		entities, err = uc.stages.ListPublic(ctx, cmd.Filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}

	return buildStageList(ctx, uc.users, entities)
}

// ListAccessibleStagesUseCase lists every stage the user owns or holds
// an invite to, private ones included.
type ListAccessibleStagesUseCase struct {
	stages stage.Repository
	users  user.Repository
	logger logger.Interface
}

func NewListAccessibleStagesUseCase(stages stage.Repository, users user.Repository, logger logger.Interface) *ListAccessibleStagesUseCase {
	return &ListAccessibleStagesUseCase{
		stages: stages,
		users:  users,
		logger: logger,
	}
}

type ListAccessibleStagesCommand struct {
	Actor  *user.User
	Filter stage.ListFilter
	// OwnerSID optionally narrows invited stages to one owner's.
	OwnerSID string
}

func (uc *ListAccessibleStagesUseCase) Execute(ctx context.Context, cmd ListAccessibleStagesCommand) (*ListStagesResult, error) {
	var (
		entities []*stage.Stage
		err      error
	)

	if cmd.OwnerSID != "" {
		owner, ownerErr := uc.users.GetBySID(ctx, cmd.OwnerSID)
		if ownerErr != nil {
			return nil, fmt.Errorf("failed to resolve owner: %w", ownerErr)
		}
		if owner == nil {
			return &ListStagesResult{Stages: []StageDTO{}}, nil
		}
		entities, err = uc.stages.ListAccessibleByOwner(ctx, cmd.Actor.ID, owner.ID, cmd.Filter)
	} else {
		entities, err = uc.stages.ListAccessible(ctx, cmd.Actor.ID, cmd.Filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}

	return buildStageList(ctx, uc.users, entities)
}

func buildStageList(ctx context.Context, users user.Repository, entities []*stage.Stage) (*ListStagesResult, error) {
	ownerSIDs, err := resolveOwnerSIDs(ctx, users, entities)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve owners: %w", err)
	}

	dtos := make([]StageDTO, 0, len(entities))
	for _, entity := range entities {
		dtos = append(dtos, newStageDTO(entity, ownerSIDs[entity.OwnerID]))
	}
	return &ListStagesResult{Stages: dtos}, nil
}
