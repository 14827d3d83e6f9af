package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/docusphere/docusphere-backend/internal/auth"
)

const maxDeviceIDLen = 128

// WithDevice resolves the calling device from X-Device-Id, minting a new id
// when the header is missing or unusable, and echoes it back.
func WithDevice() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(auth.HeaderDeviceID))
		if id == "" || len(id) > maxDeviceIDLen || strings.ContainsAny(id, ": ") {
			id = uuid.NewString()
		}

		c.Set(auth.CtxDeviceID, id)
		c.Header(auth.HeaderDeviceID, id)
		c.Next()
	}
}
