package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/internal/auth/domain"
	"github.com/docusphere/docusphere-backend/internal/auth/repository"
	"github.com/docusphere/docusphere-backend/internal/storage"
)

// AdminCredentials always sign in as the seeded administrator.
type AdminCredentials struct {
	Email    string
	Password string
}

// Manager holds what every device session shares: the user directory, the
// credential store and an optional external session provider.
type Manager struct {
	users    *repository.UserRepository
	creds    domain.CredentialStore
	provider domain.SessionProvider
	local    storage.Store
	admin    AdminCredentials
	logger   *zap.Logger

	// sessionMu serializes reads and writes of persisted device sessions.
	sessionMu sync.Mutex
}

// NewManager builds a Manager. provider may be nil.
func NewManager(
	users *repository.UserRepository,
	creds domain.CredentialStore,
	provider domain.SessionProvider,
	local storage.Store,
	admin AdminCredentials,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		users:    users,
		creds:    creds,
		provider: provider,
		local:    local,
		admin:    admin,
		logger:   logger,
	}
}

// Users exposes the shared directory.
func (m *Manager) Users() *repository.UserRepository {
	return m.users
}

// ForDevice returns an empty session for deviceID. Call CheckSession to
// restore a persisted one.
func (m *Manager) ForDevice(deviceID string) *SessionStore {
	return &SessionStore{m: m, deviceID: deviceID}
}

// SessionStore is the signed-in state of one device.
type SessionStore struct {
	m        *Manager
	deviceID string
	current  *domain.User
}

func (s *SessionStore) DeviceID() string { return s.deviceID }

// GetCurrentUser returns a copy of the signed-in user, or nil.
func (s *SessionStore) GetCurrentUser() *domain.User {
	if s.current == nil {
		return nil
	}
	u := s.current.Clone()
	return &u
}

func (s *SessionStore) IsAdminUser() bool {
	return s.current != nil && s.current.IsAdmin
}

// Login signs in with email and password. The configured admin pair always
// succeeds. On failure the session is left unchanged.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)

	if s.isAdminPair(email, password) {
		admin, err := s.m.users.EnsureAdmin(ctx, s.m.admin.Email)
		if err != nil {
			s.m.logger.Error("administrator account unavailable", zap.Error(err))
			return nil, domain.ErrLoginFailed
		}
		if err := s.setCurrent(ctx, admin); err != nil {
			return nil, err
		}
		return s.GetCurrentUser(), nil
	}

	if err := s.m.creds.SignInWithPassword(ctx, email, password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, domain.ErrInvalidCredentials
		}
		s.m.logger.Error("credential check failed", zap.String("device_id", s.deviceID), zap.Error(err))
		return nil, domain.ErrLoginFailed
	}

	u, err := s.m.users.GetByEmail(email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.setCurrent(ctx, u); err != nil {
		return nil, err
	}
	return s.GetCurrentUser(), nil
}

// Signup creates a non-admin account and signs it in.
func (s *SessionStore) Signup(ctx context.Context, firstName, lastName, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)

	if _, err := s.m.users.GetByEmail(email); err == nil {
		return nil, domain.ErrEmailTaken
	}

	if err := s.m.creds.SignUp(ctx, email, password); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		s.m.logger.Error("credential signup failed", zap.String("device_id", s.deviceID), zap.Error(err))
		return nil, domain.ErrSignupFailed
	}

	u, err := s.m.users.Create(ctx, strings.TrimSpace(firstName), strings.TrimSpace(lastName), email)
	if err != nil {
		// Without a directory entry the credential would block every retry.
		if delErr := s.m.creds.Delete(ctx, email); delErr != nil {
			s.m.logger.Error("rollback credential failed", zap.String("email", email), zap.Error(delErr))
		}
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		s.m.logger.Error("create user failed", zap.String("email", email), zap.Error(err))
		return nil, domain.ErrSignupFailed
	}

	if err := s.setCurrent(ctx, u); err != nil {
		return nil, err
	}
	return s.GetCurrentUser(), nil
}

// Logout clears the session and its persisted record.
func (s *SessionStore) Logout(ctx context.Context) error {
	if s.current != nil {
		if err := s.m.creds.SignOut(ctx, s.current.Email); err != nil {
			s.m.logger.Warn("credential sign out failed", zap.Error(err))
		}
	}
	s.current = nil

	s.m.sessionMu.Lock()
	defer s.m.sessionMu.Unlock()
	if err := s.m.local.Remove(ctx, s.key()); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// CheckSession restores the persisted session for this device. When nothing
// is stored and idToken is set, the external provider is asked to vouch for
// it and the matching directory user is signed in, created if needed.
// Failures are logged and leave the device signed out.
func (s *SessionStore) CheckSession(ctx context.Context, idToken string) *domain.User {
	var stored domain.User
	err := storage.LoadJSON(ctx, s.m.local, s.key(), &stored)
	switch {
	case err == nil:
		if fresh, lookupErr := s.m.users.GetByID(stored.ID); lookupErr == nil {
			stored = *fresh
		}
		s.current = &stored
		return s.GetCurrentUser()
	case errors.Is(err, storage.ErrMalformed):
		s.m.logger.Warn("discarding malformed session", zap.String("device_id", s.deviceID), zap.Error(err))
		return nil
	case !errors.Is(err, storage.ErrNotFound):
		s.m.logger.Warn("session restore failed", zap.String("device_id", s.deviceID), zap.Error(err))
		return nil
	}

	if s.m.provider == nil || idToken == "" {
		return nil
	}

	identity, err := s.m.provider.GetSession(ctx, idToken)
	if err != nil {
		s.m.logger.Warn("external session rejected", zap.String("device_id", s.deviceID), zap.Error(err))
		return nil
	}

	u, err := s.m.users.GetByEmail(identity.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		first, last := splitName(identity.DisplayName)
		u, err = s.m.users.Create(ctx, first, last, identity.Email)
	}
	if err != nil {
		s.m.logger.Warn("external session user unavailable", zap.String("email", identity.Email), zap.Error(err))
		return nil
	}

	if err := s.setCurrent(ctx, u); err != nil {
		s.m.logger.Warn("persist restored session failed", zap.Error(err))
		return nil
	}
	return s.GetCurrentUser()
}

// AddPurchasedProject records a purchase for userID in the directory. It
// reports false when the user already owned the project. The device session
// is refreshed only while its persisted record still belongs to userID, so a
// purchase that lands after a logout leaves the device signed out.
func (s *SessionStore) AddPurchasedProject(ctx context.Context, userID, projectID string) (bool, error) {
	added, u, err := s.m.users.AddPurchasedProject(ctx, userID, projectID)
	if err != nil {
		return false, err
	}

	s.m.sessionMu.Lock()
	defer s.m.sessionMu.Unlock()

	var stored domain.User
	err = storage.LoadJSON(ctx, s.m.local, s.key(), &stored)
	switch {
	case err == nil && stored.ID == userID:
		if err := s.save(ctx, u); err != nil {
			return added, err
		}
	case err == nil, errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrMalformed):
	default:
		return added, fmt.Errorf("read session: %w", err)
	}
	return added, nil
}

func (s *SessionStore) setCurrent(ctx context.Context, u *domain.User) error {
	s.m.sessionMu.Lock()
	defer s.m.sessionMu.Unlock()
	return s.save(ctx, u)
}

// save requires sessionMu.
func (s *SessionStore) save(ctx context.Context, u *domain.User) error {
	if err := storage.SaveJSON(ctx, s.m.local, s.key(), u); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	c := u.Clone()
	s.current = &c
	return nil
}

func (s *SessionStore) isAdminPair(email, password string) bool {
	return s.m.admin.Email != "" &&
		strings.EqualFold(email, s.m.admin.Email) &&
		password == s.m.admin.Password
}

func (s *SessionStore) key() string {
	return storage.DeviceKey(s.deviceID, storage.SessionRecord)
}

func splitName(display string) (string, string) {
	first, last, _ := strings.Cut(strings.TrimSpace(display), " ")
	return first, strings.TrimSpace(last)
}
