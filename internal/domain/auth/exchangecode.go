package auth

import (
	"fmt"
	"time"
)

// ExchangeCode is a one-time value minted after a successful OAuth
// callback and delivered to the frontend via redirect. It is traded over
// a same-origin POST for a refresh token, then deleted. A second
// redemption of the same code must fail.
type ExchangeCode struct {
	Code      string
	UserID    uint
	CreatedAt time.Time
}

// NewExchangeCode creates an exchange code record for a user.
func NewExchangeCode(code string, userID uint) (*ExchangeCode, error) {
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return &ExchangeCode{
		Code:      code,
		UserID:    userID,
		CreatedAt: time.Now(),
	}, nil
}
