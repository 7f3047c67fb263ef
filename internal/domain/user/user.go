package user

import (
	"fmt"
	"time"
)

// User represents an account created through an OAuth identity provider.
// The (Provider, ProviderID) pair is the canonical identity and never changes
// after creation; profile fields are refreshed on each login.
type User struct {
	ID         uint
	SID        string
	Provider   string
	ProviderID string
	Email      string
	Username   string
	AvatarURL  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewUser creates a user from a freshly fetched provider identity.
func NewUser(sid, provider, providerID, email, username, avatarURL string) (*User, error) {
	if sid == "" {
		return nil, fmt.Errorf("sid is required")
	}
	if provider == "" {
		return nil, fmt.Errorf("provider is required")
	}
	if providerID == "" {
		return nil, fmt.Errorf("provider user ID is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	now := time.Now()
	return &User{
		SID:        sid,
		Provider:   provider,
		ProviderID: providerID,
		Email:      email,
		Username:   username,
		AvatarURL:  avatarURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// UpdateProfile refreshes the mutable profile fields from a provider identity.
func (u *User) UpdateProfile(email, username, avatarURL string) {
	u.Email = email
	u.Username = username
	u.AvatarURL = avatarURL
	u.UpdatedAt = time.Now()
}

// SafeUser is the public projection of a user, safe to embed in API
// responses and media token metadata.
type SafeUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// Safe returns the public projection of the user.
func (u *User) Safe() SafeUser {
	return SafeUser{
		ID:        u.SID,
		Email:     u.Email,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
	}
}
