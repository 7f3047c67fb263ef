package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stagecast/internal/infrastructure/livekit"
	"stagecast/internal/shared/logger"
	"stagecast/internal/shared/utils"
)

const (
	// StageGrantHeader carries the media grant a client obtained when
	// joining a stage.
	StageGrantHeader = "X-Livekit-Token"

	// ContextKeyGrant is the gin context key holding *livekit.ClaimGrants.
	ContextKeyGrant = "stage_grant"
)

type StageGrantMiddleware struct {
	minter *livekit.GrantMinter
	logger logger.Interface
}

func NewStageGrantMiddleware(minter *livekit.GrantMinter, logger logger.Interface) *StageGrantMiddleware {
	return &StageGrantMiddleware{
		minter: minter,
		logger: logger,
	}
}

// RequireGrant validates the media grant header and checks that the
// grant belongs to the authenticated user. Whether the grant's room
// matches the requested stage is checked in the handler, where the
// route parameter is known.
func (m *StageGrantMiddleware) RequireGrant() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		token := c.GetHeader(StageGrantHeader)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid livekit token")
			c.Abort()
			return
		}

		claims := m.minter.ValidateGrant(token)
		if claims == nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Not in stage")
			c.Abort()
			return
		}

		// A grant only authorizes the user it was minted for.
		if claims.Subject != u.SID {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid livekit token")
			c.Abort()
			return
		}

		c.Set(ContextKeyGrant, claims)
		c.Next()
	}
}

// StageGrant returns the validated media grant set by RequireGrant.
func StageGrant(c *gin.Context) (*livekit.ClaimGrants, bool) {
	value, exists := c.Get(ContextKeyGrant)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*livekit.ClaimGrants)
	return claims, ok
}
