package usecases

import (
	"context"
	"time"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
)

// StageDTO is the public projection of a stage. The password hash never
// leaves the application layer.
type StageDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Private     bool      `json:"private"`
	HasPassword bool      `json:"has_password"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChatMessageDTO is a chat entry enriched with the author's public
// profile, as broadcast to room participants and returned from history.
type ChatMessageDTO struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	MessageData string          `json:"message_data"`
	File        *stage.FileMeta `json:"file,omitempty"`
	StageID     string          `json:"stage_id"`
	User        user.SafeUser   `json:"user"`
	CreatedAt   time.Time       `json:"created_at"`
}

func newStageDTO(s *stage.Stage, ownerSID string) StageDTO {
	return StageDTO{
		ID:          s.SID,
		Name:        s.Name,
		Color:       s.Color,
		Private:     s.Private,
		HasPassword: s.PasswordHash != "",
		OwnerID:     ownerSID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func newChatMessageDTO(m *stage.ChatMessage, stageSID string, author user.SafeUser) ChatMessageDTO {
	return ChatMessageDTO{
		ID:          m.SID,
		Type:        string(m.Type),
		MessageData: m.MessageData,
		File:        m.FileMeta,
		StageID:     stageSID,
		User:        author,
		CreatedAt:   m.CreatedAt,
	}
}

// resolveOwnerSIDs maps the distinct owner IDs of the given stages to
// their external SIDs.
func resolveOwnerSIDs(ctx context.Context, users user.Repository, stages []*stage.Stage) (map[uint]string, error) {
	sids := make(map[uint]string)
	for _, s := range stages {
		if _, ok := sids[s.OwnerID]; ok {
			continue
		}
		owner, err := users.GetByID(ctx, s.OwnerID)
		if err != nil {
			return nil, err
		}
		if owner != nil {
			sids[s.OwnerID] = owner.SID
		}
	}
	return sids, nil
}
