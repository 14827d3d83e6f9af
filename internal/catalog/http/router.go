package http

import "github.com/gin-gonic/gin"

// Register attaches catalog routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/projects", h.list)
	rg.GET("/projects/:id", h.detail)
	rg.GET("/categories", h.categories)
}
