package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/internal/requests/domain"
	"github.com/docusphere/docusphere-backend/internal/storage"
)

type snapshot struct {
	Requests []domain.ProjectRequest `json:"requests"`
}

// Repo holds every project request, snapshotted to global:requests.
type Repo struct {
	mu       sync.RWMutex
	requests []domain.ProjectRequest

	local  storage.Store
	logger *zap.Logger
}

func New(local storage.Store, logger *zap.Logger) *Repo {
	return &Repo{
		requests: domain.SeedRequests(),
		local:    local,
		logger:   logger,
	}
}

func (r *Repo) Load(ctx context.Context) error {
	var snap snapshot
	err := storage.LoadJSON(ctx, r.local, storage.GlobalKey(storage.RequestsRecord), &snap)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case errors.Is(err, storage.ErrMalformed):
		r.logger.Warn("ignoring malformed request snapshot", zap.Error(err))
		return nil
	case err != nil:
		return err
	}

	r.mu.Lock()
	r.requests = snap.Requests
	r.mu.Unlock()
	return nil
}

// Create stores req under the next free req-<n> id and returns it.
func (r *Repo) Create(ctx context.Context, req domain.ProjectRequest) (domain.ProjectRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req.ID = r.nextID()
	next := append(r.cloneLocked(), req)
	if err := r.commit(ctx, next); err != nil {
		return domain.ProjectRequest{}, err
	}
	return req, nil
}

func (r *Repo) Get(id string) (domain.ProjectRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return domain.ProjectRequest{}, domain.ErrRequestNotFound
}

// Update applies fn to the request with the given id and persists the result.
func (r *Repo) Update(ctx context.Context, id string, fn func(*domain.ProjectRequest)) (domain.ProjectRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.cloneLocked()
	for i := range next {
		if next[i].ID != id {
			continue
		}
		fn(&next[i])
		if err := r.commit(ctx, next); err != nil {
			return domain.ProjectRequest{}, err
		}
		return next[i], nil
	}
	return domain.ProjectRequest{}, domain.ErrRequestNotFound
}

// Pending returns paid, uncompleted requests, newest first.
func (r *Repo) Pending() []domain.ProjectRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.ProjectRequest{}
	for _, req := range r.requests {
		if req.Pending() {
			out = append(out, req)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *Repo) List() []domain.ProjectRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cloneLocked()
}

func (r *Repo) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commit(ctx, domain.SeedRequests())
}

func (r *Repo) commit(ctx context.Context, next []domain.ProjectRequest) error {
	if err := storage.SaveJSON(ctx, r.local, storage.GlobalKey(storage.RequestsRecord), snapshot{Requests: next}); err != nil {
		return fmt.Errorf("save requests: %w", err)
	}
	r.requests = next
	return nil
}

func (r *Repo) cloneLocked() []domain.ProjectRequest {
	out := make([]domain.ProjectRequest, len(r.requests), len(r.requests)+1)
	copy(out, r.requests)
	return out
}

func (r *Repo) nextID() string {
	taken := make(map[string]struct{}, len(r.requests))
	for _, req := range r.requests {
		taken[req.ID] = struct{}{}
	}
	for n := len(r.requests) + 1; ; n++ {
		id := fmt.Sprintf("req-%d", n)
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}
