package routes

import (
	"github.com/gin-gonic/gin"

	"stagecast/internal/interfaces/http/handlers"
	"stagecast/internal/interfaces/http/middleware"
)

// InviteRouteConfig holds dependencies for invite routes.
type InviteRouteConfig struct {
	InviteHandler  *handlers.InviteHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupInviteRoutes configures invite routes, all user-scoped.
func SetupInviteRoutes(engine *gin.Engine, cfg *InviteRouteConfig) {
	invites := engine.Group("/api/invites")
	invites.Use(cfg.AuthMiddleware.RequireAuth())
	{
		invites.GET("", cfg.InviteHandler.List)
		invites.GET("/:iid", cfg.InviteHandler.Get)
		invites.POST("", cfg.InviteHandler.Create)
		invites.DELETE("/:iid", cfg.InviteHandler.Delete)
	}
}
