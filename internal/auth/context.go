package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/docusphere/docusphere-backend/internal/auth/domain"
	"github.com/docusphere/docusphere-backend/internal/auth/service"
)

const (
	CtxDeviceID = "device_id"
	CtxSession  = "session"

	// HeaderDeviceID identifies the client installation that owns a cart and session.
	HeaderDeviceID = "X-Device-Id"
)

// DeviceID returns the device id set by middleware.WithDevice.
func DeviceID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxDeviceID))
}

// Session returns the per-request session set by middleware.WithSession, or
// nil if the middleware did not run.
func Session(c *gin.Context) *service.SessionStore {
	v, ok := c.Get(CtxSession)
	if !ok {
		return nil
	}
	s, _ := v.(*service.SessionStore)
	return s
}

// CurrentUser is shorthand for the signed-in user of this request.
func CurrentUser(c *gin.Context) *domain.User {
	if s := Session(c); s != nil {
		return s.GetCurrentUser()
	}
	return nil
}

// BearerToken extracts the Bearer token from the Authorization header
func BearerToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
