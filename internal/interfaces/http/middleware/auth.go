package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stagecast/internal/domain/user"
	"stagecast/internal/infrastructure/auth"
	"stagecast/internal/shared/logger"
	"stagecast/internal/shared/utils"
)

const (
	// ContextKeyUser is the gin context key holding the authenticated *user.User.
	ContextKeyUser = "current_user"
)

type AuthMiddleware struct {
	issuer *auth.SessionTokenIssuer
	logger logger.Interface
}

func NewAuthMiddleware(issuer *auth.SessionTokenIssuer, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		issuer: issuer,
		logger: logger,
	}
}

// RequireAuth rejects requests without a valid bearer access token and
// attaches the resolved user to the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		u, err := m.issuer.VerifyAccess(c.Request.Context(), token)
		if err != nil {
			m.logger.Errorw("failed to verify access token", "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error occurred")
			c.Abort()
			return
		}
		if u == nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyUser, u)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid bearer token is present
// and lets the request through anonymously otherwise.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		u, err := m.issuer.VerifyAccess(c.Request.Context(), token)
		if err == nil && u != nil {
			c.Set(ContextKeyUser, u)
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth or
// OptionalAuth.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	value, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil, false
	}
	u, ok := value.(*user.User)
	return u, ok
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
