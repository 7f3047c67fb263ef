package routes

import (
	"github.com/gin-gonic/gin"

	"stagecast/internal/interfaces/http/handlers"
	"stagecast/internal/interfaces/http/middleware"
)

// StageRouteConfig holds dependencies for the stage CRUD routes.
type StageRouteConfig struct {
	StageHandler   *handlers.StageHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupStageRoutes configures stage listing and management routes.
func SetupStageRoutes(engine *gin.Engine, cfg *StageRouteConfig) {
	stages := engine.Group("/api/stages")
	{
		stages.GET("", cfg.StageHandler.ListPublic)
		stages.GET("/all", cfg.AuthMiddleware.RequireAuth(), cfg.StageHandler.ListAccessible)
		stages.GET("/by/:uid", cfg.StageHandler.ListPublic)
		stages.GET("/all/by/:uid", cfg.AuthMiddleware.RequireAuth(), cfg.StageHandler.ListAccessible)

		stages.GET("/:sid", cfg.AuthMiddleware.OptionalAuth(), cfg.StageHandler.Get)
		stages.POST("", cfg.AuthMiddleware.RequireAuth(), cfg.StageHandler.Create)
		stages.PUT("/:sid", cfg.AuthMiddleware.RequireAuth(), cfg.StageHandler.Update)
		stages.DELETE("/:sid", cfg.AuthMiddleware.RequireAuth(), cfg.StageHandler.Delete)
	}
}
