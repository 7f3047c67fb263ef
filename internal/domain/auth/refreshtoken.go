package auth

import (
	"fmt"
	"time"
)

// RefreshTokenTTL is the hard expiry of a refresh token measured from
// creation. Redemption does not extend or rotate the token.
const RefreshTokenTTL = 30 * 24 * time.Hour

// RefreshToken is a long-lived opaque credential persisted per login
// session. It is redeemed repeatedly for access tokens until it is
// revoked or reaches its hard expiry.
type RefreshToken struct {
	Token     string
	UserID    uint
	CreatedAt time.Time
}

// NewRefreshToken creates a refresh token record for a user.
func NewRefreshToken(token string, userID uint) (*RefreshToken, error) {
	if token == "" {
		return nil, fmt.Errorf("token is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return &RefreshToken{
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Now(),
	}, nil
}

// IsExpired reports whether the token has passed its hard expiry at the
// given time.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.Sub(t.CreatedAt) > RefreshTokenTTL
}
