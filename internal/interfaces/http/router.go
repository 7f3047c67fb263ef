package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authusecases "stagecast/internal/application/auth/usecases"
	inviteusecases "stagecast/internal/application/invite/usecases"
	stageusecases "stagecast/internal/application/stage/usecases"
	"stagecast/internal/infrastructure/auth"
	"stagecast/internal/infrastructure/config"
	"stagecast/internal/infrastructure/livekit"
	"stagecast/internal/infrastructure/repository"
	"stagecast/internal/infrastructure/storage"
	"stagecast/internal/interfaces/http/handlers"
	"stagecast/internal/interfaces/http/middleware"
	"stagecast/internal/interfaces/http/routes"
	"stagecast/internal/shared/logger"
	"stagecast/internal/shared/utils"
)

// Router wires repositories, use cases and handlers into a Gin engine.
type Router struct {
	engine               *gin.Engine
	config               *config.Config
	authHandler          *handlers.AuthHandler
	stageHandler         *handlers.StageHandler
	stageRoomHandler     *handlers.StageRoomHandler
	inviteHandler        *handlers.InviteHandler
	authMiddleware       *middleware.AuthMiddleware
	stageGrantMiddleware *middleware.StageGrantMiddleware
	rateLimiter          *middleware.RateLimiter
	logger               logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	engine := gin.New()

	userRepo := repository.NewUserRepository(db, log)
	stateRepo := repository.NewOAuthStateRepository(db, log)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db, log)
	exchangeCodeRepo := repository.NewExchangeCodeRepository(db, log)
	stageRepo := repository.NewStageRepository(db, log)
	inviteRepo := repository.NewInviteRepository(db, log)
	chatMessageRepo := repository.NewChatMessageRepository(db, log)

	providers := auth.NewProviderRegistry(
		auth.NewGitHubClient(cfg.OAuth.GitHub),
		auth.NewGoogleClient(cfg.OAuth.Google),
	)
	issuer := auth.NewSessionTokenIssuer(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, userRepo)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	minter := livekit.NewGrantMinter(cfg.LiveKit)
	roomClient := livekit.NewHTTPRoomClient(cfg.LiveKit, minter)

	uploader, err := storage.NewS3Uploader(context.Background(), cfg.Storage)
	if err != nil {
		return nil, err
	}

	initiateOAuthUC := authusecases.NewInitiateOAuthLoginUseCase(providers, stateRepo, cfg.Server.AllowedOrigins, log)
	handleOAuthUC := authusecases.NewHandleOAuthCallbackUseCase(providers, stateRepo, userRepo, exchangeCodeRepo, cfg.Server.FrontendURL, log)
	redeemExchangeUC := authusecases.NewRedeemExchangeCodeUseCase(exchangeCodeRepo, refreshTokenRepo, userRepo, log)
	refreshAccessUC := authusecases.NewRefreshAccessTokenUseCase(refreshTokenRepo, userRepo, issuer, log)
	invalidateTokenUC := authusecases.NewInvalidateRefreshTokenUseCase(refreshTokenRepo, log)

	createStageUC := stageusecases.NewCreateStageUseCase(stageRepo, hasher, log)
	updateStageUC := stageusecases.NewUpdateStageUseCase(stageRepo, hasher, log)
	deleteStageUC := stageusecases.NewDeleteStageUseCase(stageRepo, log)
	getStageUC := stageusecases.NewGetStageUseCase(stageRepo, inviteRepo, userRepo, log)
	listPublicUC := stageusecases.NewListPublicStagesUseCase(stageRepo, userRepo, log)
	listAccessibleUC := stageusecases.NewListAccessibleStagesUseCase(stageRepo, userRepo, log)

	issueGrantUC := stageusecases.NewIssueStageGrantUseCase(stageRepo, inviteRepo, minter, log)
	chatHistoryUC := stageusecases.NewGetChatHistoryUseCase(stageRepo, chatMessageRepo, userRepo, log)
	postMessageUC := stageusecases.NewPostChatMessageUseCase(stageRepo, chatMessageRepo, roomClient, log)
	postAttachmentUC := stageusecases.NewPostChatAttachmentUseCase(stageRepo, chatMessageRepo, roomClient, uploader, log)
	requestToSpeakUC := stageusecases.NewRequestToSpeakUseCase(stageRepo, chatMessageRepo, roomClient, log)
	setSpeakerUC := stageusecases.NewSetSpeakerUseCase(stageRepo, chatMessageRepo, userRepo, roomClient, log)

	createInviteUC := inviteusecases.NewCreateInviteUseCase(inviteRepo, stageRepo, userRepo, log)
	listInvitesUC := inviteusecases.NewListInvitesUseCase(inviteRepo, stageRepo, userRepo, log)
	getInviteUC := inviteusecases.NewGetInviteUseCase(inviteRepo, stageRepo, userRepo, log)
	deleteInviteUC := inviteusecases.NewDeleteInviteUseCase(inviteRepo, stageRepo, userRepo, log)

	return &Router{
		engine: engine,
		config: cfg,
		authHandler: handlers.NewAuthHandler(
			initiateOAuthUC, handleOAuthUC, redeemExchangeUC, refreshAccessUC, invalidateTokenUC,
			log, cfg.Server.ResolveCookie(cfg.Auth.Cookie),
		),
		stageHandler: handlers.NewStageHandler(
			createStageUC, updateStageUC, deleteStageUC, getStageUC, listPublicUC, listAccessibleUC, log,
		),
		stageRoomHandler: handlers.NewStageRoomHandler(
			issueGrantUC, chatHistoryUC, postMessageUC, postAttachmentUC, requestToSpeakUC, setSpeakerUC, log,
		),
		inviteHandler: handlers.NewInviteHandler(
			createInviteUC, listInvitesUC, getInviteUC, deleteInviteUC, log,
		),
		authMiddleware:       middleware.NewAuthMiddleware(issuer, log),
		stageGrantMiddleware: middleware.NewStageGrantMiddleware(minter, log),
		rateLimiter:          middleware.NewRateLimiter(redisClient, "auth", 100, 1*time.Minute),
		logger:               log,
	}, nil
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.config.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/healthz", func(c *gin.Context) {
		utils.SuccessResponse(c, http.StatusOK, "", gin.H{"status": "ok"})
	})

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler:    r.authHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
	})

	routes.SetupStageRoutes(r.engine, &routes.StageRouteConfig{
		StageHandler:   r.stageHandler,
		AuthMiddleware: r.authMiddleware,
	})

	routes.SetupStageRoomRoutes(r.engine, &routes.StageRoomRouteConfig{
		StageRoomHandler:     r.stageRoomHandler,
		AuthMiddleware:       r.authMiddleware,
		StageGrantMiddleware: r.stageGrantMiddleware,
	})

	routes.SetupInviteRoutes(r.engine, &routes.InviteRouteConfig{
		InviteHandler:  r.inviteHandler,
		AuthMiddleware: r.authMiddleware,
	})
}

// GetEngine returns the Gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
