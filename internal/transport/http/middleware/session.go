package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kekambas-blog/internal/logger"
	"kekambas-blog/internal/session"
)

const ContextSessionKey = "session"

// LoadSession resolves the request's session before the handlers run and
// commits any buffered mutations after they finish.
func LoadSession(manager *session.Manager, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := manager.Load(c)
		c.Set(ContextSessionKey, sess)

		c.Next()

		if err := sess.Commit(c); err != nil {
			log.Errorw("save session failed", "err", err)
		}
	}
}

// CurrentSession returns the session loaded by LoadSession, or nil when the
// middleware did not run.
func CurrentSession(c *gin.Context) *session.Current {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	sess, ok := value.(*session.Current)
	if !ok {
		return nil
	}
	return sess
}

// RequireLogin gates a route on an authenticated session.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil || !sess.LoggedIn() {
			if sess != nil {
				sess.Flash("danger", "Thou shall not pass (without first logging in)!")
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
