package http

import "github.com/gin-gonic/gin"

// Register attaches project-request routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/info", h.info)
	rg.POST("", h.submit)
	rg.POST("/:id/confirm-payment", h.confirmPayment)
}
