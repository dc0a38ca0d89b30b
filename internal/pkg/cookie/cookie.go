package cookie

import (
	"net/http"
	"time"

	"licoreria-api/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName = "access_token"
	// CartSessionCookieName identifies the per-session cart; the cart itself
	// lives server-side and is never read by the order ledger.
	CartSessionCookieName = "cart_session"
)

func SetAccessTokenCookie(c *gin.Context, cfg config.CookieConfig, accessToken string, expiry time.Duration) {
	c.SetSameSite(getSameSite(cfg.SameSite))

	c.SetCookie(
		AccessTokenCookieName,
		accessToken,
		int(expiry.Seconds()),
		"/",
		cfg.Domain,
		cfg.Secure,
		true, // HttpOnly
	)
}

func ClearAccessTokenCookie(c *gin.Context, cfg config.CookieConfig) {
	c.SetSameSite(getSameSite(cfg.SameSite))
	c.SetCookie(AccessTokenCookieName, "", -1, "/", cfg.Domain, cfg.Secure, true)
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

func SetCartSessionCookie(c *gin.Context, cfg config.CookieConfig, sessionID string) {
	c.SetSameSite(getSameSite(cfg.SameSite))
	// Session-scoped: no max age, dropped when the browser closes.
	c.SetCookie(CartSessionCookieName, sessionID, 0, "/", cfg.Domain, cfg.Secure, true)
}

func GetCartSession(c *gin.Context) string {
	sessionID, _ := c.Cookie(CartSessionCookieName)
	return sessionID
}

func getSameSite(sameSite string) http.SameSite {
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
