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
	"golang.org/x/crypto/bcrypt"
)

// CredentialRepository is the local CredentialStore. It keeps bcrypt hashes
// keyed by lower-cased email under global:credentials.
type CredentialRepository struct {
	mu     sync.RWMutex
	hashes map[string]string
	cost   int

	local  storage.Store
	logger *zap.Logger
}

// NewCredentialRepository uses bcrypt.DefaultCost when cost is zero.
func NewCredentialRepository(local storage.Store, cost int, logger *zap.Logger) *CredentialRepository {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &CredentialRepository{
		hashes: map[string]string{},
		cost:   cost,
		local:  local,
		logger: logger,
	}
}

func (r *CredentialRepository) Load(ctx context.Context) error {
	hashes := map[string]string{}
	err := storage.LoadJSON(ctx, r.local, storage.GlobalKey(storage.CredentialsRecord), &hashes)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case errors.Is(err, storage.ErrMalformed):
		r.logger.Warn("ignoring malformed credential store", zap.Error(err))
		return nil
	case err != nil:
		return err
	}

	r.mu.Lock()
	r.hashes = hashes
	r.mu.Unlock()
	return nil
}

// SignUp stores a hash for email. It fails with ErrEmailTaken if one exists.
func (r *CredentialRepository) SignUp(ctx context.Context, email, password string) error {
	key := credentialKey(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.hashes[key]; ok {
		return domain.ErrEmailTaken
	}

	next := r.cloneHashes()
	next[key] = string(hash)
	return r.commit(ctx, next)
}

// Delete forgets the hash for email. Unknown emails are a no-op.
func (r *CredentialRepository) Delete(ctx context.Context, email string) error {
	key := credentialKey(email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.hashes[key]; !ok {
		return nil
	}
	next := r.cloneHashes()
	delete(next, key)
	return r.commit(ctx, next)
}

// SignInWithPassword returns ErrInvalidCredentials for an unknown email or a
// wrong password.
func (r *CredentialRepository) SignInWithPassword(_ context.Context, email, password string) error {
	r.mu.RLock()
	hash, ok := r.hashes[credentialKey(email)]
	r.mu.RUnlock()

	if !ok {
		return domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// SignOut is a no-op for local credentials; there is no server-side token.
func (r *CredentialRepository) SignOut(context.Context, string) error {
	return nil
}

func (r *CredentialRepository) cloneHashes() map[string]string {
	next := make(map[string]string, len(r.hashes)+1)
	for k, v := range r.hashes {
		next[k] = v
	}
	return next
}

// commit requires r.mu.
func (r *CredentialRepository) commit(ctx context.Context, next map[string]string) error {
	if err := storage.SaveJSON(ctx, r.local, storage.GlobalKey(storage.CredentialsRecord), next); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	r.hashes = next
	return nil
}

func credentialKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
