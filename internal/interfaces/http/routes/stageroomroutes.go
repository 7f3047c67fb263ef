package routes

import (
	"github.com/gin-gonic/gin"

	"stagecast/internal/interfaces/http/handlers"
	"stagecast/internal/interfaces/http/middleware"
)

// StageRoomRouteConfig holds dependencies for the in-room stage routes.
type StageRoomRouteConfig struct {
	StageRoomHandler     *handlers.StageRoomHandler
	AuthMiddleware       *middleware.AuthMiddleware
	StageGrantMiddleware *middleware.StageGrantMiddleware
}

// SetupStageRoomRoutes configures the room-scoped routes. Everything
// requires a logged-in user; everything except the grant mint also
// requires a valid media grant in X-Livekit-Token.
func SetupStageRoomRoutes(engine *gin.Engine, cfg *StageRoomRouteConfig) {
	room := engine.Group("/api/stage/:sid")
	room.Use(cfg.AuthMiddleware.RequireAuth())
	{
		room.GET("/token", cfg.StageRoomHandler.Token)

		granted := room.Group("")
		granted.Use(cfg.StageGrantMiddleware.RequireGrant())
		{
			granted.GET("/info", cfg.StageRoomHandler.Info)
			granted.GET("/chat", cfg.StageRoomHandler.GetChat)
			granted.POST("/chat", cfg.StageRoomHandler.PostChat)
			granted.POST("/chat/file", cfg.StageRoomHandler.PostChatFile)
			granted.POST("/request_to_speak", cfg.StageRoomHandler.RequestToSpeak)
			granted.POST("/owner/make_speaker", cfg.StageRoomHandler.MakeSpeaker)
			granted.POST("/owner/make_listener", cfg.StageRoomHandler.MakeListener)
		}
	}
}
