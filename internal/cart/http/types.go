package http

import (
	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/internal/cart/service"
	catalogservice "github.com/docusphere/docusphere-backend/internal/catalog/service"
)

// Handler bundles the dependencies for cart HTTP endpoints.
type Handler struct {
	carts   *service.Loader
	catalog *catalogservice.CatalogService
	logger  *zap.Logger
}

func New(carts *service.Loader, catalog *catalogservice.CatalogService, logger *zap.Logger) *Handler {
	return &Handler{carts: carts, catalog: catalog, logger: logger}
}
