package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"newstracker/internal/domain/ports"
)

const (
	sessionCookie = "newstracker_session"
	sessionCtxKey = "sessionID"
)

// sessionMiddleware makes sure every request carries a session ID cookie.
func sessionMiddleware(opts Options) gin.HandlerFunc {
	maxAge := int(opts.SessionTTL / time.Second)
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil {
			id = uuid.NewString()
		} else if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, maxAge, "/", "", opts.SecureCookies, true)
		c.Set(sessionCtxKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}

// requestLogger logs every request once it has been served.
func requestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if logger == nil {
			return
		}
		logger.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
