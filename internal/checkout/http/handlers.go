package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/internal/auth"
	authdomain "github.com/docusphere/docusphere-backend/internal/auth/domain"
	"github.com/docusphere/docusphere-backend/internal/checkout/service"
)

// start accepts the customer's word that the transfer was made and begins
// recording the purchases.
func (h *Handler) start(c *gin.Context) {
	deviceID := auth.DeviceID(c)

	cart, err := h.carts.Load(c.Request.Context(), deviceID)
	if err != nil {
		h.logger.Error("load cart for checkout failed", zap.String("device_id", deviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	op, err := h.svc.Start(c.Request.Context(), deviceID, auth.Session(c), cart)
	switch {
	case errors.Is(err, authdomain.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to complete your purchase"})
		return
	case errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	case err != nil:
		h.logger.Error("start checkout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Header("Location", "/api/v1/checkout/operations/"+op.ID)
	c.JSON(http.StatusAccepted, gin.H{"operation": op})
}

// operation only reveals operations started from the same device.
func (h *Handler) operation(c *gin.Context) {
	op, err := h.svc.Get(c.Param("id"))
	if err != nil || op.DeviceID != auth.DeviceID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "operation not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"operation": op})
}

func (h *Handler) bankDetails(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bank_details": h.bank})
}
