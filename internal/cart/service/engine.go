package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/internal/cart/domain"
	catalogdomain "github.com/docusphere/docusphere-backend/internal/catalog/domain"
	"github.com/docusphere/docusphere-backend/internal/storage"
)

// Engine is the cart of one device. Items keep insertion order and hold at
// most one entry per project id. Every mutation rewrites device:<id>:cart.
type Engine struct {
	items    []domain.CartItem
	deviceID string
	local    storage.Store
	logger   *zap.Logger
}

// Load reads the device's cart. A missing record is an empty cart; so is a
// malformed one, after logging it.
func Load(ctx context.Context, local storage.Store, deviceID string, logger *zap.Logger) (*Engine, error) {
	e := &Engine{
		items:    []domain.CartItem{},
		deviceID: deviceID,
		local:    local,
		logger:   logger,
	}

	var items []domain.CartItem
	err := storage.LoadJSON(ctx, local, e.key(), &items)
	switch {
	case err == nil:
		e.items = dedupe(items)
	case errors.Is(err, storage.ErrNotFound):
	case errors.Is(err, storage.ErrMalformed):
		logger.Warn("discarding malformed cart", zap.String("device_id", deviceID), zap.Error(err))
	default:
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return e, nil
}

// AddToCart appends project. The cart is unchanged if it is already present.
func (e *Engine) AddToCart(ctx context.Context, project catalogdomain.Project) error {
	if e.IsInCart(project.ID) {
		return domain.ErrAlreadyInCart
	}

	next := append(e.cloneItems(), domain.CartItem{ProjectID: project.ID, Project: project.Clone()})
	return e.commit(ctx, next)
}

// RemoveFromCart drops every entry for projectID. Absent ids are a no-op.
func (e *Engine) RemoveFromCart(ctx context.Context, projectID string) error {
	next := make([]domain.CartItem, 0, len(e.items))
	for _, it := range e.items {
		if it.ProjectID != projectID {
			next = append(next, it)
		}
	}
	if len(next) == len(e.items) {
		return nil
	}
	return e.commit(ctx, next)
}

// RemoveItems drops every entry whose project id is listed, in one write.
func (e *Engine) RemoveItems(ctx context.Context, projectIDs ...string) error {
	drop := make(map[string]struct{}, len(projectIDs))
	for _, id := range projectIDs {
		drop[id] = struct{}{}
	}
	next := make([]domain.CartItem, 0, len(e.items))
	for _, it := range e.items {
		if _, ok := drop[it.ProjectID]; !ok {
			next = append(next, it)
		}
	}
	if len(next) == len(e.items) {
		return nil
	}
	return e.commit(ctx, next)
}

func (e *Engine) ClearCart(ctx context.Context) error {
	return e.commit(ctx, []domain.CartItem{})
}

// CalculateTotal sums the item prices in naira.
func (e *Engine) CalculateTotal() int64 {
	var total int64
	for _, it := range e.items {
		total += it.Project.Price
	}
	return total
}

func (e *Engine) IsInCart(projectID string) bool {
	for _, it := range e.items {
		if it.ProjectID == projectID {
			return true
		}
	}
	return false
}

// Items returns a copy of the cart in insertion order.
func (e *Engine) Items() []domain.CartItem {
	return e.cloneItems()
}

func (e *Engine) Len() int { return len(e.items) }

func (e *Engine) commit(ctx context.Context, next []domain.CartItem) error {
	if err := storage.SaveJSON(ctx, e.local, e.key(), next); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	e.items = next
	return nil
}

func (e *Engine) cloneItems() []domain.CartItem {
	out := make([]domain.CartItem, len(e.items), len(e.items)+1)
	for i, it := range e.items {
		out[i] = domain.CartItem{ProjectID: it.ProjectID, Project: it.Project.Clone()}
	}
	return out
}

func (e *Engine) key() string {
	return storage.DeviceKey(e.deviceID, storage.CartRecord)
}

// dedupe keeps the first entry per project id from a stored cart.
func dedupe(items []domain.CartItem) []domain.CartItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]domain.CartItem, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProjectID]; ok {
			continue
		}
		seen[it.ProjectID] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Loader opens carts against a shared store.
type Loader struct {
	local  storage.Store
	logger *zap.Logger
}

func NewLoader(local storage.Store, logger *zap.Logger) *Loader {
	return &Loader{local: local, logger: logger}
}

func (l *Loader) Load(ctx context.Context, deviceID string) (*Engine, error) {
	return Load(ctx, l.local, deviceID, l.logger)
}

// RemovePurchased reopens the device cart and drops projectIDs from it.
// Items added since the caller last read the cart are kept.
func (l *Loader) RemovePurchased(ctx context.Context, deviceID string, projectIDs []string) error {
	e, err := l.Load(ctx, deviceID)
	if err != nil {
		return err
	}
	return e.RemoveItems(ctx, projectIDs...)
}
