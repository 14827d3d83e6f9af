package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/internal/auth"
	"github.com/docusphere/docusphere-backend/internal/catalog/domain"
	"github.com/docusphere/docusphere-backend/internal/catalog/service"
	"github.com/docusphere/docusphere-backend/internal/entitlement"
)

func (h *Handler) list(c *gin.Context) {
	featured, _ := strconv.ParseBool(c.Query("featured"))
	projects := h.catalog.List(service.Filter{
		Category:     c.Query("category"),
		Query:        c.Query("q"),
		FeaturedOnly: featured,
	})

	out := make([]projectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, h.summarize(p))
	}
	c.JSON(http.StatusOK, gin.H{"projects": out, "count": len(out)})
}

// detail applies the reader's entitlement to the chapter list.
func (h *Handler) detail(c *gin.Context) {
	p, err := h.catalog.Get(c.Param("id"))
	if errors.Is(err, domain.ErrProjectNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	if err != nil {
		h.logger.Error("get project failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	user := auth.CurrentUser(c)

	inCart := false
	if cart, err := h.carts.Load(c.Request.Context(), auth.DeviceID(c)); err != nil {
		h.logger.Warn("cart unavailable for project detail", zap.Error(err))
	} else {
		inCart = cart.IsInCart(p.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"project": projectDetail{
			projectSummary: h.summarize(p),
			Chapters:       entitlement.Views(p, user),
		},
		"has_access": entitlement.HasAccess(p, user),
		"in_cart":    inCart,
	})
}

func (h *Handler) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}
