package stage

import "context"

// ListFilter represents pagination and ordering options for stage lists.
type ListFilter struct {
	Limit     int
	Offset    int
	Sort      string // column to order by, whitelisted by the repository
	SortOrder string // asc or desc
}

// Repository defines the interface for stage data operations.
type Repository interface {
	Create(ctx context.Context, stage *Stage) error

	// GetByID retrieves a stage by internal ID or (nil, nil) when absent.
	GetByID(ctx context.Context, id uint) (*Stage, error)

	// GetBySID retrieves a stage by external SID or (nil, nil) when absent.
	GetBySID(ctx context.Context, sid string) (*Stage, error)

	Update(ctx context.Context, stage *Stage) error

	// Delete removes a stage together with its invites and chat messages.
	Delete(ctx context.Context, id uint) error

	// ListPublic lists non-private stages.
	ListPublic(ctx context.Context, filter ListFilter) ([]*Stage, error)

	// ListPublicByOwner lists non-private stages owned by a user.
	ListPublicByOwner(ctx context.Context, ownerID uint, filter ListFilter) ([]*Stage, error)

	// ListAccessible lists stages the user owns or is invited to.
	ListAccessible(ctx context.Context, userID uint, filter ListFilter) ([]*Stage, error)

	// ListAccessibleByOwner narrows ListAccessible to stages owned by
	// ownerID, plus the user's own stages.
	ListAccessibleByOwner(ctx context.Context, userID, ownerID uint, filter ListFilter) ([]*Stage, error)
}

// InviteRepository defines the interface for invite data operations.
type InviteRepository interface {
	Create(ctx context.Context, invite *Invite) error

	// GetBySID retrieves an invite by external SID or (nil, nil) when absent.
	GetBySID(ctx context.Context, sid string) (*Invite, error)

	// ListByUserID lists invites addressed to a user.
	ListByUserID(ctx context.Context, userID uint) ([]*Invite, error)

	// Exists reports whether the user holds an invite to the stage.
	Exists(ctx context.Context, stageID, userID uint) (bool, error)

	Delete(ctx context.Context, id uint) error
}

// ChatMessageRepository defines the interface for chat history operations.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *ChatMessage) error

	// ListByStageID returns the oldest messages first, capped at limit.
	ListByStageID(ctx context.Context, stageID uint, limit int) ([]*ChatMessage, error)
}
