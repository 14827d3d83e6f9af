package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/internal/auth"
	"github.com/docusphere/docusphere-backend/internal/cart/domain"
	"github.com/docusphere/docusphere-backend/internal/cart/service"
	catalogdomain "github.com/docusphere/docusphere-backend/internal/catalog/domain"
)

type addReq struct {
	ProjectID string `json:"project_id"`
}

func (h *Handler) load(c *gin.Context) (*service.Engine, bool) {
	e, err := h.carts.Load(c.Request.Context(), auth.DeviceID(c))
	if err != nil {
		h.internal(c, err)
		return nil, false
	}
	return e, true
}

func (h *Handler) respond(c *gin.Context, status int, e *service.Engine) {
	c.JSON(status, gin.H{
		"items": e.Items(),
		"count": e.Len(),
		"total": e.CalculateTotal(),
	})
}

func (h *Handler) get(c *gin.Context) {
	e, ok := h.load(c)
	if !ok {
		return
	}
	h.respond(c, http.StatusOK, e)
}

func (h *Handler) add(c *gin.Context) {
	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ProjectID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required", "field": "project_id"})
		return
	}

	p, err := h.catalog.Get(strings.TrimSpace(req.ProjectID))
	if errors.Is(err, catalogdomain.ErrProjectNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	if err != nil {
		h.internal(c, err)
		return
	}

	e, ok := h.load(c)
	if !ok {
		return
	}
	if err := e.AddToCart(c.Request.Context(), p); err != nil {
		if errors.Is(err, domain.ErrAlreadyInCart) {
			c.JSON(http.StatusConflict, gin.H{"error": "project already in cart"})
			return
		}
		h.internal(c, err)
		return
	}

	h.respond(c, http.StatusCreated, e)
}

func (h *Handler) remove(c *gin.Context) {
	e, ok := h.load(c)
	if !ok {
		return
	}
	if err := e.RemoveFromCart(c.Request.Context(), c.Param("project_id")); err != nil {
		h.internal(c, err)
		return
	}
	h.respond(c, http.StatusOK, e)
}

func (h *Handler) clear(c *gin.Context) {
	e, ok := h.load(c)
	if !ok {
		return
	}
	if err := e.ClearCart(c.Request.Context()); err != nil {
		h.internal(c, err)
		return
	}
	h.respond(c, http.StatusOK, e)
}

func (h *Handler) internal(c *gin.Context, err error) {
	h.logger.Error("cart request failed", zap.String("device_id", auth.DeviceID(c)), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
