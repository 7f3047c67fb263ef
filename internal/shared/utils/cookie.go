package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stagecast/internal/shared/config"
)

const (
	RefreshTokenCookie = "refresh_token"
)

// SetRefreshTokenCookie sets the refresh token as an HttpOnly cookie scoped
// to the refresh endpoint path so it is never sent with ordinary API calls.
func SetRefreshTokenCookie(c *gin.Context, cookieConfig config.CookieConfig, refreshToken string, maxAge int) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(
		RefreshTokenCookie,
		refreshToken,
		maxAge,
		cookieConfig.Path,
		cookieConfig.Domain,
		cookieConfig.Secure,
		true, // HttpOnly
	)
}

// ClearRefreshTokenCookie removes the refresh token cookie.
func ClearRefreshTokenCookie(c *gin.Context, cookieConfig config.CookieConfig) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(
		RefreshTokenCookie,
		"",
		-1,
		cookieConfig.Path,
		cookieConfig.Domain,
		cookieConfig.Secure,
		true, // HttpOnly
	)
}

// GetRefreshTokenFromCookie retrieves the refresh token from the request cookie.
func GetRefreshTokenFromCookie(c *gin.Context) string {
	token, err := c.Cookie(RefreshTokenCookie)
	if err != nil || token == "" {
		return ""
	}
	return token
}

// parseSameSite converts string to http.SameSite
func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
