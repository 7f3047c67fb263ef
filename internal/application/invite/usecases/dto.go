package usecases

import (
	"context"
	"fmt"
	"time"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
)

// StageSummary is the public projection of an invite's stage.
type StageSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Private   bool      `json:"private"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// InviteDTO is an invite enriched with its stage.
type InviteDTO struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Stage     StageSummary `json:"stage"`
	CreatedAt time.Time    `json:"created_at"`
}

func newInviteDTO(inv *stage.Invite, userSID string, s *stage.Stage, ownerSID string) InviteDTO {
	return InviteDTO{
		ID:        inv.SID,
		UserID:    userSID,
		CreatedAt: inv.CreatedAt,
		Stage: StageSummary{
			ID:        s.SID,
			Name:      s.Name,
			Color:     s.Color,
			Private:   s.Private,
			OwnerID:   ownerSID,
			CreatedAt: s.CreatedAt,
		},
	}
}

// resolveStage loads an invite's stage and its owner SID.
func resolveStage(ctx context.Context, stages stage.Repository, users user.Repository, stageID uint) (*stage.Stage, string, error) {
	s, err := stages.GetByID(ctx, stageID)
	if err != nil || s == nil {
		return nil, "", err
	}

	owner, err := users.GetByID(ctx, s.OwnerID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve owner: %w", err)
	}
	ownerSID := ""
	if owner != nil {
		ownerSID = owner.SID
	}
	return s, ownerSID, nil
}
