package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/docusphere/docusphere-backend/internal/auth/domain"
	"github.com/docusphere/docusphere-backend/internal/storage"
	"go.uber.org/zap"
)

type userSnapshot struct {
	Users []domain.User `json:"users"`
}

// UserRepository is the shared user directory. It is seeded with the admin
// account and snapshotted to global:users on every change.
type UserRepository struct {
	mu         sync.RWMutex
	users      []domain.User
	adminEmail string

	local  storage.Store
	logger *zap.Logger
}

func NewUserRepository(local storage.Store, logger *zap.Logger) *UserRepository {
	r := &UserRepository{
		adminEmail: SeedAdmin().Email,
		local:      local,
		logger:     logger,
	}
	r.users = r.seed()
	return r
}

// SeedAdmin is the administrator account every directory starts with.
func SeedAdmin() domain.User {
	return domain.User{
		ID:                domain.AdminUserID,
		FirstName:         "Admin",
		LastName:          "User",
		Email:             "admin@docusphere.com",
		IsAdmin:           true,
		PurchasedProjects: []string{},
	}
}

func (r *UserRepository) seed() []domain.User {
	admin := SeedAdmin()
	admin.Email = r.adminEmail
	return []domain.User{admin}
}

// Load restores the persisted directory. A malformed snapshot is logged and
// the seeded directory is kept.
func (r *UserRepository) Load(ctx context.Context) error {
	var snap userSnapshot
	err := storage.LoadJSON(ctx, r.local, storage.GlobalKey(storage.UsersRecord), &snap)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case errors.Is(err, storage.ErrMalformed):
		r.logger.Warn("ignoring malformed user directory", zap.Error(err))
		return nil
	case err != nil:
		return err
	}

	r.mu.Lock()
	r.users = snap.Users
	r.mu.Unlock()
	return nil
}

func (r *UserRepository) GetByID(id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i].Clone()
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail matches email case-insensitively.
func (r *UserRepository) GetByEmail(email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexByEmail(email); i >= 0 {
		u := r.users[i].Clone()
		return &u, nil
	}
	return nil, domain.ErrUserNotFound
}

// Create adds a non-admin user with the next sequential id.
func (r *UserRepository) Create(ctx context.Context, firstName, lastName, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexByEmail(email) >= 0 {
		return nil, domain.ErrEmailTaken
	}

	u := domain.User{
		ID:                r.nextID(),
		FirstName:         firstName,
		LastName:          lastName,
		Email:             strings.TrimSpace(email),
		PurchasedProjects: []string{},
	}
	next := append(r.cloneLocked(), u)
	if err := r.commit(ctx, next); err != nil {
		return nil, err
	}
	out := u.Clone()
	return &out, nil
}

// Save replaces the stored user with the same id.
func (r *UserRepository) Save(ctx context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.cloneLocked()
	for i := range next {
		if next[i].ID == u.ID {
			next[i] = u.Clone()
			return r.commit(ctx, next)
		}
	}
	return domain.ErrUserNotFound
}

// AddPurchasedProject records projectID for the user. added is false when
// the user already owned it; the returned user reflects the stored state.
func (r *UserRepository) AddPurchasedProject(ctx context.Context, userID, projectID string) (bool, *domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.cloneLocked()
	for i := range next {
		if next[i].ID != userID {
			continue
		}
		u := next[i].Clone()
		if u.HasPurchased(projectID) {
			return false, &u, nil
		}
		u.PurchasedProjects = append(u.PurchasedProjects, projectID)
		next[i] = u
		if err := r.commit(ctx, next); err != nil {
			return false, nil, err
		}
		out := u.Clone()
		return true, &out, nil
	}
	return false, nil, domain.ErrUserNotFound
}

// Count returns the number of users in the directory.
func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// Reset restores the seeded directory.
func (r *UserRepository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commit(ctx, r.seed())
}

// EnsureAdmin gives the administrator account the address email, restoring
// the account if a loaded directory lacks it. It fails with ErrEmailTaken
// when a regular user already owns email.
func (r *UserRepository) EnsureAdmin(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if email == "" {
		email = r.adminEmail
	}
	if i := r.indexByEmail(email); i >= 0 && r.users[i].ID != domain.AdminUserID {
		return nil, domain.ErrEmailTaken
	}
	r.adminEmail = email

	next := r.cloneLocked()
	i := -1
	for j := range next {
		if next[j].ID == domain.AdminUserID {
			i = j
			break
		}
	}
	if i < 0 {
		next = append(next, r.seed()[0])
		i = len(next) - 1
	}

	if next[i].Email != email || !next[i].IsAdmin {
		next[i].Email = email
		next[i].IsAdmin = true
		if err := r.commit(ctx, next); err != nil {
			return nil, err
		}
		r.logger.Info("administrator account updated", zap.String("email", email))
	}
	out := next[i].Clone()
	return &out, nil
}

func (r *UserRepository) commit(ctx context.Context, next []domain.User) error {
	if err := storage.SaveJSON(ctx, r.local, storage.GlobalKey(storage.UsersRecord), userSnapshot{Users: next}); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	r.users = next
	return nil
}

func (r *UserRepository) cloneLocked() []domain.User {
	out := make([]domain.User, len(r.users), len(r.users)+1)
	for i := range r.users {
		out[i] = r.users[i].Clone()
	}
	return out
}

// nextID never reuses an id even if the snapshot was edited by hand.
func (r *UserRepository) nextID() string {
	n := len(r.users) + 1
	for {
		id := fmt.Sprintf("user-%d", n)
		taken := false
		for i := range r.users {
			if r.users[i].ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		n++
	}
}

func (r *UserRepository) indexByEmail(email string) int {
	email = strings.TrimSpace(email)
	for i := range r.users {
		if strings.EqualFold(r.users[i].Email, email) {
			return i
		}
	}
	return -1
}
