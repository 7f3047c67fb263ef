package stage

import (
	"fmt"
	"time"
)

// Invite grants a user access to a private stage. Only the stage owner
// may create invites, and owners cannot invite themselves.
type Invite struct {
	ID        uint
	SID       string
	StageID   uint
	UserID    uint
	CreatedAt time.Time
}

// NewInvite creates an invite for a user to a stage.
func NewInvite(sid string, stageID, userID uint) (*Invite, error) {
	if sid == "" {
		return nil, fmt.Errorf("sid is required")
	}
	if stageID == 0 {
		return nil, fmt.Errorf("stage ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return &Invite{
		SID:       sid,
		StageID:   stageID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}, nil
}
