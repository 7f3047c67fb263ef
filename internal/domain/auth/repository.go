package auth

import "context"

// OAuthStateRepository persists pending OAuth state nonces.
type OAuthStateRepository interface {
	Create(ctx context.Context, state *OAuthState) error

	// GetByToken returns the state record or (nil, nil) when absent.
	GetByToken(ctx context.Context, token string) (*OAuthState, error)

	// Delete removes the state and reports whether a record was actually
	// deleted, so concurrent consumers racing for the same nonce can
	// detect that they lost.
	Delete(ctx context.Context, token string) (bool, error)
}

// RefreshTokenRepository persists long-lived refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error

	// GetByToken returns the token record or (nil, nil) when absent.
	GetByToken(ctx context.Context, token string) (*RefreshToken, error)

	// Delete removes the token. Deleting an absent token is not an error;
	// revocation is idempotent.
	Delete(ctx context.Context, token string) error

	// DeleteByUserID removes all refresh tokens belonging to a user.
	DeleteByUserID(ctx context.Context, userID uint) error
}

// ExchangeCodeRepository persists one-time exchange codes.
type ExchangeCodeRepository interface {
	Create(ctx context.Context, code *ExchangeCode) error

	// GetByCode returns the code record or (nil, nil) when absent.
	GetByCode(ctx context.Context, code string) (*ExchangeCode, error)

	// Delete removes the code and reports whether a record was actually
	// deleted. Exactly one of two concurrent redeemers may observe true.
	Delete(ctx context.Context, code string) (bool, error)
}
