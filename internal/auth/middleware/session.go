package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docusphere/docusphere-backend/internal/auth"
	"github.com/docusphere/docusphere-backend/internal/auth/service"
)

// WithSession restores the device's session for the rest of the request.
// It never rejects a request; use RequireUser for that.
func WithSession(m *service.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := m.ForDevice(auth.DeviceID(c))
		s.CheckSession(c.Request.Context(), auth.BearerToken(c))
		c.Set(auth.CtxSession, s)
		c.Next()
	}
}

func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.CurrentUser(c) == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := auth.CurrentUser(c)
		if u == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}
		if !u.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
