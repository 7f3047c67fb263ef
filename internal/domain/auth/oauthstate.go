package auth

import (
	"fmt"
	"time"
)

// StateTTL is how long an OAuth state nonce stays valid after issuance.
const StateTTL = 15 * time.Minute

// OAuthState is the anti-CSRF nonce binding an authorization redirect to
// its later callback. It is consumed exactly once; an expired-but-present
// state is invalid and must still be deleted so it cannot be retried.
type OAuthState struct {
	Token     string
	ReturnTo  string
	CreatedAt time.Time
}

// NewOAuthState creates a state record for an authorization redirect.
func NewOAuthState(token, returnTo string) (*OAuthState, error) {
	if token == "" {
		return nil, fmt.Errorf("state token is required")
	}
	return &OAuthState{
		Token:     token,
		ReturnTo:  returnTo,
		CreatedAt: time.Now(),
	}, nil
}

// IsExpired reports whether the state has outlived its TTL at the given time.
func (s *OAuthState) IsExpired(now time.Time) bool {
	return now.Sub(s.CreatedAt) > StateTTL
}
