package routes

import (
	"github.com/gin-gonic/gin"

	"stagecast/internal/interfaces/http/handlers"
	"stagecast/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/api/auth")
	{
		auth.GET("/:provider/oauth", cfg.RateLimiter.Limit(), cfg.AuthHandler.InitiateOAuth)
		auth.GET("/:provider/callback", cfg.AuthHandler.HandleOAuthCallback)

		auth.POST("/refresh/token", cfg.RateLimiter.Limit(), cfg.AuthHandler.ExchangeToken)
		auth.GET("/refresh", cfg.AuthHandler.RefreshToken)
		auth.POST("/refresh", cfg.AuthHandler.RefreshToken)
		auth.GET("/refresh/invalidate", cfg.AuthHandler.InvalidateToken)
		auth.POST("/refresh/invalidate", cfg.AuthHandler.InvalidateToken)

		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Me)
	}
}
