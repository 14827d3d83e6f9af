package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/internal/auth"
	catalogdomain "github.com/docusphere/docusphere-backend/internal/catalog/domain"
	"github.com/docusphere/docusphere-backend/internal/requests/domain"
)

type submitReq struct {
	Title       string `json:"title"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

// info returns the fee and the account to pay it into.
func (h *Handler) info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"fee":          h.svc.Fee(),
		"bank_details": h.svc.BankDetails(),
	})
}

func (h *Handler) submit(c *gin.Context) {
	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.Submit(c.Request.Context(), auth.CurrentUser(c), req.Title, req.Email, req.Description)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"request":      created,
		"fee":          h.svc.Fee(),
		"bank_details": h.svc.BankDetails(),
	})
}

func (h *Handler) confirmPayment(c *gin.Context) {
	updated, err := h.svc.ConfirmPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": updated})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var vErr *catalogdomain.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
	case errors.Is(err, domain.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
	default:
		h.logger.Error("project request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
