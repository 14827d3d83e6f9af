package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/docusphere/docusphere-backend/internal/catalog/domain"
	"github.com/docusphere/docusphere-backend/internal/storage"
	"go.uber.org/zap"
)

type snapshot struct {
	Projects []domain.Project `json:"projects"`
}

// Store owns the project list and the static categories. Every mutation is
// written through to local storage under global:catalog.
type Store struct {
	mu         sync.RWMutex
	projects   []domain.Project
	categories []domain.Category

	local  storage.Store
	logger *zap.Logger
}

// NewStore returns a store holding the seed catalog.
func NewStore(local storage.Store, logger *zap.Logger) *Store {
	return &Store{
		projects:   domain.SeedProjects(),
		categories: domain.SeedCategories(),
		local:      local,
		logger:     logger,
	}
}

// Load replaces the seed catalog with the persisted one, if any. A malformed
// snapshot is logged and the seed catalog is kept.
func (s *Store) Load(ctx context.Context) error {
	var snap snapshot
	err := storage.LoadJSON(ctx, s.local, storage.GlobalKey(storage.CatalogRecord), &snap)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case errors.Is(err, storage.ErrMalformed):
		s.logger.Warn("ignoring malformed catalog snapshot", zap.Error(err))
		return nil
	case err != nil:
		return err
	}

	s.mu.Lock()
	s.projects = snap.Projects
	s.mu.Unlock()
	return nil
}

// List returns copies of every project in catalog order.
func (s *Store) List() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p.Clone())
	}
	return out
}

func (s *Store) Get(id string) (domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.projects[i].Clone(), nil
	}
	return domain.Project{}, domain.ErrProjectNotFound
}

func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Replace swaps the whole project list.
func (s *Store) Replace(ctx context.Context, projects []domain.Project) error {
	next := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		next = append(next, p.Clone())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, next)
}

// Append adds a project at the end of the catalog.
func (s *Store) Append(ctx context.Context, p domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(p.ID) >= 0 {
		return domain.ErrProjectExists
	}
	next := append(s.cloneLocked(), p.Clone())
	return s.commit(ctx, next)
}

// Put replaces the project with the same id.
func (s *Store) Put(ctx context.Context, p domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(p.ID)
	if i < 0 {
		return domain.ErrProjectNotFound
	}
	next := s.cloneLocked()
	next[i] = p.Clone()
	return s.commit(ctx, next)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.ErrProjectNotFound
	}
	next := s.cloneLocked()
	next = append(next[:i], next[i+1:]...)
	return s.commit(ctx, next)
}

// Reset restores the seed catalog.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, domain.SeedProjects())
}

// commit persists next and only then makes it visible. Caller holds mu.
func (s *Store) commit(ctx context.Context, next []domain.Project) error {
	if err := storage.SaveJSON(ctx, s.local, storage.GlobalKey(storage.CatalogRecord), snapshot{Projects: next}); err != nil {
		return err
	}
	s.projects = next
	return nil
}

func (s *Store) cloneLocked() []domain.Project {
	out := make([]domain.Project, len(s.projects), len(s.projects)+1)
	copy(out, s.projects)
	return out
}

func (s *Store) indexOf(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}
