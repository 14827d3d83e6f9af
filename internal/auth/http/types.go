package http

import (
	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/internal/auth/middleware"
	catalogservice "github.com/docusphere/docusphere-backend/internal/catalog/service"
)

type Handler struct {
	catalog *catalogservice.CatalogService
	limiter *middleware.ClientLimiter
	logger  *zap.Logger
}

func New(catalog *catalogservice.CatalogService, limiter *middleware.ClientLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		limiter: limiter,
		logger:  logger,
	}
}
