package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stagecast/internal/domain/user"
)

const refreshTokenBytes = 32

// AccessClaims are the claims carried by a session access token. The
// subject is the user's external SID.
type AccessClaims struct {
	jwt.RegisteredClaims
}

// SessionTokenIssuer mints and verifies short-lived access tokens and
// generates opaque refresh token values. Access tokens are stateless;
// verification re-resolves the subject against the user store so deleted
// users are rejected even within the token's validity window.
type SessionTokenIssuer struct {
	secret           []byte
	accessExpMinutes int
	users            user.Repository
	now              func() time.Time
}

func NewSessionTokenIssuer(secret string, accessExpMinutes int, users user.Repository) *SessionTokenIssuer {
	return &SessionTokenIssuer{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		users:            users,
		now:              time.Now,
	}
}

// MintAccess creates a signed access token for the user.
func (s *SessionTokenIssuer) MintAccess(u *user.User) (string, error) {
	now := s.now()
	claims := &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.SID,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.accessExpMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// VerifyAccess validates the token signature and expiry and resolves the
// subject to a user. Any failure returns (nil, nil); callers treat a nil
// user as an invalid token without distinguishing causes.
func (s *SessionTokenIssuer) VerifyAccess(ctx context.Context, tokenString string) (*user.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, nil
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, nil
	}

	u, err := s.users.GetBySID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GenerateRefreshToken creates a new opaque high-entropy refresh token
// value with the "rt_" prefix. The caller persists it.
func GenerateRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return "rt_" + hex.EncodeToString(b), nil
}

// AccessExpMinutes returns the access token lifetime in minutes.
func (s *SessionTokenIssuer) AccessExpMinutes() int {
	return s.accessExpMinutes
}
