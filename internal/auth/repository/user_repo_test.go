package repository

import (
	"context"
	"testing"

	"github.com/docusphere/docusphere-backend/internal/auth/domain"
	"github.com/docusphere/docusphere-backend/internal/storage"
	"github.com/docusphere/docusphere-backend/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserRepository_Seed(t *testing.T) {
	repo := NewUserRepository(memory.New(), zap.NewNop())

	admin, err := repo.GetByID(domain.AdminUserID)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	byEmail, err := repo.GetByEmail("ADMIN@docusphere.com")
	require.NoError(t, err)
	assert.Equal(t, domain.AdminUserID, byEmail.ID)

	_, err = repo.GetByID("user-9")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(memory.New(), zap.NewNop())

	u, err := repo.Create(ctx, "Ada", "Obi", "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-2", u.ID)
	assert.False(t, u.IsAdmin)
	assert.Empty(t, u.PurchasedProjects)

	_, err = repo.Create(ctx, "Ada", "Again", "Ada@Example.com")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.Equal(t, 2, repo.Count())
}

func TestUserRepository_AddPurchasedProject(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(memory.New(), zap.NewNop())
	u, err := repo.Create(ctx, "Ada", "Obi", "ada@example.com")
	require.NoError(t, err)

	added, got, err := repo.AddPurchasedProject(ctx, u.ID, "proj-1")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"proj-1"}, got.PurchasedProjects)

	added, got, err = repo.AddPurchasedProject(ctx, u.ID, "proj-1")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"proj-1"}, got.PurchasedProjects)

	_, _, err = repo.AddPurchasedProject(ctx, "user-404", "proj-1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_PersistAndReload(t *testing.T) {
	ctx := context.Background()
	local := memory.New()
	repo := NewUserRepository(local, zap.NewNop())

	u, err := repo.Create(ctx, "Ada", "Obi", "ada@example.com")
	require.NoError(t, err)
	u.FirstName = "Adaeze"
	require.NoError(t, repo.Save(ctx, *u))

	reloaded := NewUserRepository(local, zap.NewNop())
	require.NoError(t, reloaded.Load(ctx))
	got, err := reloaded.GetByEmail("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Adaeze", got.FirstName)

	assert.ErrorIs(t, repo.Save(ctx, domain.User{ID: "ghost"}), domain.ErrUserNotFound)

	require.NoError(t, repo.Reset(ctx))
	assert.Equal(t, 1, repo.Count())
}

func TestUserRepository_LoadMalformed(t *testing.T) {
	ctx := context.Background()
	local := memory.New()
	require.NoError(t, local.Set(ctx, storage.GlobalKey(storage.UsersRecord), []byte("not json")))

	repo := NewUserRepository(local, zap.NewNop())
	require.NoError(t, repo.Load(ctx))
	assert.Equal(t, 1, repo.Count())
}

func TestUserRepository_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	local := memory.New()
	repo := NewUserRepository(local, zap.NewNop())

	admin, err := repo.EnsureAdmin(ctx, "ops@docusphere.com")
	require.NoError(t, err)
	assert.Equal(t, domain.AdminUserID, admin.ID)
	assert.True(t, admin.IsAdmin)

	byEmail, err := repo.GetByEmail("OPS@docusphere.com")
	require.NoError(t, err)
	assert.Equal(t, domain.AdminUserID, byEmail.ID)
	_, err = repo.GetByEmail("admin@docusphere.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	reloaded := NewUserRepository(local, zap.NewNop())
	require.NoError(t, reloaded.Load(ctx))
	restored, err := reloaded.GetByID(domain.AdminUserID)
	require.NoError(t, err)
	assert.Equal(t, "ops@docusphere.com", restored.Email)

	require.NoError(t, repo.Reset(ctx))
	afterReset, err := repo.GetByID(domain.AdminUserID)
	require.NoError(t, err)
	assert.Equal(t, "ops@docusphere.com", afterReset.Email)

	_, err = repo.Create(ctx, "Ada", "Obi", "ada@example.com")
	require.NoError(t, err)
	_, err = repo.EnsureAdmin(ctx, "ada@example.com")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}
