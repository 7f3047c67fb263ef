package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stagecast/internal/application/auth/usecases"
	"stagecast/internal/interfaces/http/middleware"
	"stagecast/internal/shared/config"
	"stagecast/internal/shared/logger"
	"stagecast/internal/shared/utils"
)

const refreshTokenMaxAge = 30 * 24 * 60 * 60

// AuthHandler serves the OAuth handshake and the token lifecycle
// endpoints. Login ends with a redirect carrying a one-time exchange
// code; the SPA trades that code for a refresh token cookie and then
// redeems the cookie for short-lived access tokens.
type AuthHandler struct {
	initiateOAuthUseCase   *usecases.InitiateOAuthLoginUseCase
	handleOAuthUseCase     *usecases.HandleOAuthCallbackUseCase
	redeemExchangeUseCase  *usecases.RedeemExchangeCodeUseCase
	refreshAccessUseCase   *usecases.RefreshAccessTokenUseCase
	invalidateTokenUseCase *usecases.InvalidateRefreshTokenUseCase
	logger                 logger.Interface
	cookieConfig           config.CookieConfig
}

func NewAuthHandler(
	initiateOAuthUC *usecases.InitiateOAuthLoginUseCase,
	handleOAuthUC *usecases.HandleOAuthCallbackUseCase,
	redeemExchangeUC *usecases.RedeemExchangeCodeUseCase,
	refreshAccessUC *usecases.RefreshAccessTokenUseCase,
	invalidateTokenUC *usecases.InvalidateRefreshTokenUseCase,
	logger logger.Interface,
	cookieConfig config.CookieConfig,
) *AuthHandler {
	return &AuthHandler{
		initiateOAuthUseCase:   initiateOAuthUC,
		handleOAuthUseCase:     handleOAuthUC,
		redeemExchangeUseCase:  redeemExchangeUC,
		refreshAccessUseCase:   refreshAccessUC,
		invalidateTokenUseCase: invalidateTokenUC,
		logger:                 logger,
		cookieConfig:           cookieConfig,
	}
}

type ExchangeTokenRequest struct {
	Code string `json:"code" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
	All          bool   `json:"all"`
}

func (h *AuthHandler) InitiateOAuth(c *gin.Context) {
	cmd := usecases.InitiateOAuthLoginCommand{
		Provider: c.Param("provider"),
		Next:     c.Query("next"),
	}

	result, err := h.initiateOAuthUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Warnw("OAuth initiation failed", "error", err, "provider", cmd.Provider)
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, result.AuthURL)
}

func (h *AuthHandler) HandleOAuthCallback(c *gin.Context) {
	cmd := usecases.HandleOAuthCallbackCommand{
		Provider: c.Param("provider"),
		Code:     c.Query("code"),
		State:    c.Query("state"),
	}

	result, err := h.handleOAuthUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Warnw("OAuth callback failed", "error", err, "provider", cmd.Provider)
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, result.RedirectURL)
}

// ExchangeToken trades a one-time exchange code for a refresh token.
// The token is set as an HttpOnly cookie and echoed in the body for
// non-browser clients.
func (h *AuthHandler) ExchangeToken(c *gin.Context) {
	var req ExchangeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "code is required")
		return
	}

	result, err := h.redeemExchangeUseCase.Execute(c.Request.Context(), usecases.RedeemExchangeCodeCommand{Code: req.Code})
	if err != nil {
		h.logger.Warnw("exchange code redemption failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetRefreshTokenCookie(c, h.cookieConfig, result.RefreshToken, refreshTokenMaxAge)

	utils.SuccessResponse(c, http.StatusOK, "login successful", gin.H{
		"refresh_token": result.RefreshToken,
		"user":          result.User.Safe(),
	})
}

// RefreshToken redeems the refresh token cookie for a new access token.
// The refresh token itself is not rotated. A rejected token clears the
// cookie so the client stops retrying a dead session.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken := utils.GetRefreshTokenFromCookie(c)

	if refreshToken == "" {
		var req RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	if refreshToken == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "refresh token is required")
		return
	}

	result, err := h.refreshAccessUseCase.Execute(c.Request.Context(), usecases.RefreshAccessTokenCommand{RefreshToken: refreshToken})
	if err != nil {
		h.logger.Warnw("token refresh failed", "error", err)
		utils.ClearRefreshTokenCookie(c, h.cookieConfig)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "token refreshed", gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"expires_in":    result.ExpiresIn,
	})
}

// InvalidateToken revokes the refresh token and clears its cookie.
// Revoking an unknown token still succeeds. A body of {"all": true}
// revokes every session of the token's owner.
func (h *AuthHandler) InvalidateToken(c *gin.Context) {
	var req RefreshTokenRequest
	_ = c.ShouldBindJSON(&req)

	refreshToken := utils.GetRefreshTokenFromCookie(c)
	if refreshToken == "" {
		refreshToken = req.RefreshToken
	}

	cmd := usecases.InvalidateRefreshTokenCommand{RefreshToken: refreshToken, Everywhere: req.All}
	if err := h.invalidateTokenUseCase.Execute(c.Request.Context(), cmd); err != nil {
		h.logger.Errorw("refresh token invalidation failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ClearRefreshTokenCookie(c, h.cookieConfig)

	utils.SuccessResponse(c, http.StatusOK, "Success", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"user": u.Safe()})
}
