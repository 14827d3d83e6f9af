package service

import (
	"strings"

	"github.com/docusphere/docusphere-backend/internal/catalog/domain"
	"github.com/docusphere/docusphere-backend/internal/catalog/repository"
)

// UncategorizedName is shown for a project whose category id is unknown.
const UncategorizedName = "Uncategorized"

// Filter narrows a catalog listing. An empty Category or "all" matches every
// category; Query is matched case-insensitively against title and description.
type Filter struct {
	Category     string
	Query        string
	FeaturedOnly bool
}

type CatalogService struct {
	store *repository.Store
}

func NewCatalogService(store *repository.Store) *CatalogService {
	return &CatalogService{store: store}
}

// List returns the projects matching f in catalog order.
func (s *CatalogService) List(f Filter) []domain.Project {
	category := strings.TrimSpace(f.Category)
	if strings.EqualFold(category, "all") {
		category = ""
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))

	all := s.store.List()
	out := make([]domain.Project, 0, len(all))
	for _, p := range all {
		if category != "" && p.Category != category {
			continue
		}
		if f.FeaturedOnly && !p.Featured {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *CatalogService) Get(id string) (domain.Project, error) {
	return s.store.Get(id)
}

func (s *CatalogService) Featured() []domain.Project {
	return s.List(Filter{FeaturedOnly: true})
}

func (s *CatalogService) Categories() []domain.Category {
	return s.store.Categories()
}

// CategoryName resolves a category id to its display name.
func (s *CatalogService) CategoryName(id string) string {
	for _, c := range s.store.Categories() {
		if c.ID == id {
			return c.Name
		}
	}
	return UncategorizedName
}

// Purchased returns the catalog entries for the given project ids, in catalog
// order. Ids that no longer exist are skipped.
func (s *CatalogService) Purchased(ids []string) []domain.Project {
	if len(ids) == 0 {
		return []domain.Project{}
	}
	owned := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		owned[id] = struct{}{}
	}

	out := []domain.Project{}
	for _, p := range s.store.List() {
		if _, ok := owned[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}
