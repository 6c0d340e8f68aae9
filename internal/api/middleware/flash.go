package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const FlashCookieName = "todolist_flash"

// SetFlash queues a one-shot message for the next rendered page. The cookie
// is Secure whenever the session cookie is.
func SetFlash(c *gin.Context, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookieName, message, 0, "/", "", c.GetBool(CookieSecureKey), true)
}

// PopFlash returns the queued message, if any, and clears it
func PopFlash(c *gin.Context) string {
	message, err := c.Cookie(FlashCookieName)
	if err != nil || message == "" {
		return ""
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookieName, "", -1, "/", "", c.GetBool(CookieSecureKey), true)
	return message
}
