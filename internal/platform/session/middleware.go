package session

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"logsearch_backend/internal/api"
)

// ContextSession is the gin context key holding the authenticated *Session.
const ContextSession = "session"

// LoginRequired returns a middleware that restricts a route to authenticated
// users. Browser requests are redirected to the login page with the original
// path preserved in ?next=; API requests get a 401 JSON envelope instead.
func LoginRequired(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(CookieName)
		if err == nil && id != "" {
			sess, err := store.Get(c.Request.Context(), id)
			if err == nil {
				c.Set(ContextSession, sess)
				c.Next()
				return
			}
		}

		if wantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
			return
		}

		next := url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, "/login?next="+next)
		c.Abort()
	}
}

// Current returns the session stored by LoginRequired, or nil outside a
// guarded route.
func Current(c *gin.Context) *Session {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	sess, _ := v.(*Session)
	return sess
}

// SetCookie attaches the session cookie to the response.
func SetCookie(c *gin.Context, sess *Session, maxAge int) {
	c.SetCookie(CookieName, sess.ID, maxAge, "/", "", false, true)
}

// ClearCookie removes the session cookie.
func ClearCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// wantsJSON reports whether the request targets the JSON API rather than a
// browser page.
func wantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
