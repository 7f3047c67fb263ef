package stage

import (
	"fmt"
	"strings"
	"time"
)

// DefaultColor is the accent color assigned when a stage is created
// without one.
const DefaultColor = "#00a9a5"

// Stage represents a live audio/video room owned by a user. Private
// stages are reachable only by the owner and invited users.
type Stage struct {
	ID           uint
	SID          string
	Name         string
	Color        string
	Private      bool
	PasswordHash string
	OwnerID      uint
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewStage creates a stage with a validated name and color.
func NewStage(sid, name, color string, private bool, ownerID uint) (*Stage, error) {
	if sid == "" {
		return nil, fmt.Errorf("sid is required")
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name must be at least 1 character long")
	}
	if color == "" {
		color = DefaultColor
	}
	normalized, err := NormalizeColor(color)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Stage{
		SID:       sid,
		Name:      name,
		Color:     normalized,
		Private:   private,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename sets a new non-empty name.
func (s *Stage) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name must be at least 1 character long")
	}
	s.Name = name
	s.UpdatedAt = time.Now()
	return nil
}

// SetColor validates and applies a new accent color.
func (s *Stage) SetColor(color string) error {
	normalized, err := NormalizeColor(color)
	if err != nil {
		return err
	}
	s.Color = normalized
	s.UpdatedAt = time.Now()
	return nil
}

// SetPrivate toggles the stage's visibility.
func (s *Stage) SetPrivate(private bool) {
	s.Private = private
	s.UpdatedAt = time.Now()
}

// SetPasswordHash replaces the stage password hash. An empty hash clears
// the password.
func (s *Stage) SetPasswordHash(hash string) {
	s.PasswordHash = hash
	s.UpdatedAt = time.Now()
}

// IsOwnedBy reports whether the given user owns the stage.
func (s *Stage) IsOwnedBy(userID uint) bool {
	return s.OwnerID == userID
}

// NormalizeColor validates a "#rrggbb" hex color and returns it
// lowercased and trimmed.
func NormalizeColor(color string) (string, error) {
	color = strings.ToLower(strings.TrimSpace(color))
	if !strings.HasPrefix(color, "#") {
		return "", fmt.Errorf("color must start with #")
	}
	if len(color) != 7 {
		return "", fmt.Errorf("color must be 6 characters long")
	}
	for _, c := range color[1:] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", fmt.Errorf("color must be a valid hex color")
		}
	}
	return color, nil
}
