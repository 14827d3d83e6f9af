package http

import (
	"time"

	"go.uber.org/zap"

	cartservice "github.com/docusphere/docusphere-backend/internal/cart/service"
	"github.com/docusphere/docusphere-backend/internal/catalog/domain"
	"github.com/docusphere/docusphere-backend/internal/catalog/service"
	"github.com/docusphere/docusphere-backend/internal/entitlement"
)

// Handler bundles the dependencies for catalog HTTP endpoints.
type Handler struct {
	catalog *service.CatalogService
	carts   *cartservice.Loader
	logger  *zap.Logger
}

func New(catalog *service.CatalogService, carts *cartservice.Loader, logger *zap.Logger) *Handler {
	return &Handler{catalog: catalog, carts: carts, logger: logger}
}

type projectSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	Category     string    `json:"category"`
	CategoryName string    `json:"category_name"`
	Featured     bool      `json:"featured"`
	ChapterCount int       `json:"chapter_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type projectDetail struct {
	projectSummary
	Chapters []entitlement.ChapterView `json:"chapters"`
}

func (h *Handler) summarize(p domain.Project) projectSummary {
	return projectSummary{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		Category:     p.Category,
		CategoryName: h.catalog.CategoryName(p.Category),
		Featured:     p.Featured,
		ChapterCount: len(p.Chapters),
		CreatedAt:    p.CreatedAt,
	}
}
