package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/internal/auth"
	"github.com/docusphere/docusphere-backend/internal/auth/domain"
)

type signupReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates an account and signs the device in as it
func (h *Handler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	for _, f := range []struct{ name, value string }{
		{"first_name", req.FirstName},
		{"last_name", req.LastName},
		{"email", req.Email},
		{"password", req.Password},
	} {
		if strings.TrimSpace(f.value) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": f.name + " is required", "field": f.name})
			return
		}
	}

	user, err := auth.Session(c).Signup(c.Request.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := auth.Session(c).Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := auth.Session(c).Logout(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetSession reports who, if anyone, is signed in on this device
func (h *Handler) GetSession(c *gin.Context) {
	s := auth.Session(c)
	c.JSON(http.StatusOK, gin.H{
		"user":     s.GetCurrentUser(),
		"is_admin": s.IsAdminUser(),
	})
}

// GetProfile returns the current user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	user := auth.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"user":            user,
		"display_name":    user.DisplayName(),
		"purchased_count": len(user.PurchasedProjects),
	})
}

// ListPurchased returns the catalog entries the current user owns
func (h *Handler) ListPurchased(c *gin.Context) {
	user := auth.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"projects": h.catalog.Purchased(user.PurchasedProjects)})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, domain.ErrLoginFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "login failed"})
	case errors.Is(err, domain.ErrSignupFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "signup failed"})
	default:
		h.logger.Error("auth request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
