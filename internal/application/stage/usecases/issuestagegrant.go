package usecases

import (
	"context"
	"fmt"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
	"stagecast/internal/infrastructure/livekit"
	apperrors "stagecast/internal/shared/errors"
	"stagecast/internal/shared/logger"
)

type IssueStageGrantCommand struct {
	StageSID string
	Actor    *user.User
}

type IssueStageGrantResult struct {
	Token string
}

// IssueStageGrantUseCase checks stage access and mints the media grant a
// client presents to the media server when joining the room. Access is
// decided before any token is minted: owner or invitee always, anyone
// for public stages. The owner joins as a speaker with room admin.
type IssueStageGrantUseCase struct {
	stages  stage.Repository
	invites stage.InviteRepository
	minter  *livekit.GrantMinter
	logger  logger.Interface
}

func NewIssueStageGrantUseCase(
	stages stage.Repository,
	invites stage.InviteRepository,
	minter *livekit.GrantMinter,
	logger logger.Interface,
) *IssueStageGrantUseCase {
	return &IssueStageGrantUseCase{
		stages:  stages,
		invites: invites,
		minter:  minter,
		logger:  logger,
	}
}

func (uc *IssueStageGrantUseCase) Execute(ctx context.Context, cmd IssueStageGrantCommand) (*IssueStageGrantResult, error) {
	entity, err := uc.stages.GetBySID(ctx, cmd.StageSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stage: %w", err)
	}
	if entity == nil {
		return nil, apperrors.NewNotFoundError("Stage not found. You may need to login to access private stages")
	}

	accessible, err := hasStageAccess(ctx, uc.invites, entity, cmd.Actor)
	if err != nil {
		return nil, err
	}
	if !accessible {
		return nil, apperrors.NewNotFoundError("Stage not found. You may need to login to access private stages")
	}

	canSpeak := entity.IsOwnedBy(cmd.Actor.ID)
	token, err := uc.minter.MintUserGrant(cmd.Actor, entity, canSpeak)
	if err != nil {
		return nil, fmt.Errorf("failed to mint media grant: %w", err)
	}

	uc.logger.Infow("media grant issued",
		"stage_sid", entity.SID,
		"user_sid", cmd.Actor.SID,
		"can_speak", canSpeak)

	return &IssueStageGrantResult{Token: token}, nil
}
