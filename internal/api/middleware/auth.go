package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/todolist/internal/core/domain"
	"github.com/martijn/todolist/internal/core/service"
)

const (
	SessionCookieName = "todolist_session"
	UserContextKey    = "user"
	CookieSecureKey   = "cookie_secure"
)

// SessionMiddleware resolves the session cookie to the current user. An
// anonymous request passes through with no user in the context.
func SessionMiddleware(sessionService *service.SessionService, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CookieSecureKey, cookieSecure)

		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := sessionService.CurrentUser(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		if user == nil {
			// Stale cookie
			ClearSessionCookie(c, cookieSecure)
		} else {
			c.Set(UserContextKey, user)
		}

		c.Next()
	}
}

// RequireAuth redirects anonymous requests to the login page
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser retrieves the authenticated user from context
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*domain.User)
	return user, ok && user != nil
}

// SetSessionCookie stores the signed session token in an HttpOnly cookie
func SetSessionCookie(c *gin.Context, token string, lifetime time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(lifetime.Seconds()), "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
