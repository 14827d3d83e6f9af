package http

import (
	"github.com/gin-gonic/gin"

	"github.com/docusphere/docusphere-backend/internal/auth/middleware"
)

// Register expects rg to already run WithDevice and WithSession.
func (h *Handler) Register(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	authGroup.POST("/signup", middleware.RateLimit(h.limiter), h.Signup)
	authGroup.POST("/login", middleware.RateLimit(h.limiter), h.Login)
	authGroup.POST("/logout", h.Logout)
	authGroup.GET("/session", h.GetSession)

	profile := rg.Group("/profile", middleware.RequireUser())
	profile.GET("", h.GetProfile)
	profile.GET("/projects", h.ListPurchased)
}
