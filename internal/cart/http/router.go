package http

import "github.com/gin-gonic/gin"

// Register attaches cart routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.get)
	rg.POST("/items", h.add)
	rg.DELETE("/items/:project_id", h.remove)
	rg.DELETE("", h.clear)
}
