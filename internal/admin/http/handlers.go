package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/internal/auth"
	authdomain "github.com/docusphere/docusphere-backend/internal/auth/domain"
	"github.com/docusphere/docusphere-backend/internal/catalog/domain"
	requestsdomain "github.com/docusphere/docusphere-backend/internal/requests/domain"
)

func (h *Handler) publish(c *gin.Context) {
	var draft domain.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.svc.Publish(c.Request.Context(), auth.CurrentUser(c), draft)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": p})
}

func (h *Handler) update(c *gin.Context) {
	var draft domain.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), auth.CurrentUser(c), c.Param("id"), draft)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": p})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.CurrentUser(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) pending(c *gin.Context) {
	reqs, err := h.svc.PendingRequests(auth.CurrentUser(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": reqs, "count": len(reqs)})
}

func (h *Handler) approve(c *gin.Context) {
	req, err := h.svc.ApproveRequest(c.Request.Context(), auth.CurrentUser(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": req})
}

func (h *Handler) reject(c *gin.Context) {
	req, err := h.svc.RejectRequest(c.Request.Context(), auth.CurrentUser(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": req})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
	case errors.Is(err, authdomain.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
	case errors.Is(err, authdomain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
	case errors.Is(err, requestsdomain.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
	default:
		h.logger.Error("admin request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
