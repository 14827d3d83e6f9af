package http

import (
	"github.com/gin-gonic/gin"

	"github.com/docusphere/docusphere-backend/internal/auth/middleware"
)

// Register expects rg to already run WithDevice and WithSession; admin
// access is enforced here and again by the service.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.Use(middleware.RequireAdmin())

	rg.POST("/projects", h.publish)
	rg.PUT("/projects/:id", h.update)
	rg.DELETE("/projects/:id", h.delete)

	rg.GET("/requests/pending", h.pending)
	rg.POST("/requests/:id/approve", h.approve)
	rg.POST("/requests/:id/reject", h.reject)
}
