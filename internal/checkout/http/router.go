package http

import "github.com/gin-gonic/gin"

// Register expects rg to already run WithDevice and WithSession.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.start)
	rg.GET("/operations/:id", h.operation)
	rg.GET("/bank-details", h.bankDetails)
}
