package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authdomain "github.com/docusphere/docusphere-backend/internal/auth/domain"
	"github.com/docusphere/docusphere-backend/internal/catalog/domain"
	"github.com/docusphere/docusphere-backend/internal/catalog/repository"
	requestsdomain "github.com/docusphere/docusphere-backend/internal/requests/domain"
	requestsrepo "github.com/docusphere/docusphere-backend/internal/requests/repository"
	requestsservice "github.com/docusphere/docusphere-backend/internal/requests/service"
	"github.com/docusphere/docusphere-backend/internal/storage/memory"
)

var (
	admin    = &authdomain.User{ID: authdomain.AdminUserID, IsAdmin: true}
	customer = &authdomain.User{ID: "user-2"}
)

func newService() (*AdminService, *repository.Store) {
	local := memory.New()
	logger := zap.NewNop()
	catalog := repository.NewStore(local, logger)
	requests := requestsservice.NewRequestService(requestsrepo.New(local, logger), 4000, requestsdomain.BankDetails{}, logger)
	svc := NewAdminService(catalog, requests, logger)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }
	return svc, catalog
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	svc, catalog := newService()

	p, err := svc.Publish(ctx, admin, domain.Draft{Title: "Edge AI", Description: "On-device inference", Category: "cat-1", Price: 6500})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^project-[a-z0-9]{13}$`), p.ID)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), p.CreatedAt)
	require.Len(t, p.Chapters, 1)
	assert.Equal(t, "Chapter 1", p.Chapters[0].Title)

	all := catalog.List()
	assert.Equal(t, p.ID, all[len(all)-1].ID)
}

func TestPublishValidation(t *testing.T) {
	ctx := context.Background()
	svc, catalog := newService()

	_, err := svc.Publish(ctx, admin, domain.Draft{Description: "D", Category: "cat-1"})
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "title", vErr.Field)

	_, err = svc.Publish(ctx, admin, domain.Draft{Title: "T", Description: "D", Category: "cat-1", Price: -1})
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "price", vErr.Field)

	assert.Len(t, catalog.List(), 5)
}

func TestNonAdminIsRejected(t *testing.T) {
	ctx := context.Background()
	svc, catalog := newService()
	draft := domain.Draft{Title: "T", Description: "D", Category: "cat-1"}

	_, err := svc.Publish(ctx, customer, draft)
	assert.ErrorIs(t, err, authdomain.ErrForbidden)
	_, err = svc.Publish(ctx, nil, draft)
	assert.ErrorIs(t, err, authdomain.ErrAuthRequired)
	_, err = svc.Update(ctx, customer, "proj-1", draft)
	assert.ErrorIs(t, err, authdomain.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, customer, "proj-1"), authdomain.ErrForbidden)
	_, err = svc.PendingRequests(customer)
	assert.ErrorIs(t, err, authdomain.ErrForbidden)
	_, err = svc.ApproveRequest(ctx, customer, "req-1")
	assert.ErrorIs(t, err, authdomain.ErrForbidden)
	_, err = svc.RejectRequest(ctx, customer, "req-1")
	assert.ErrorIs(t, err, authdomain.ErrForbidden)

	assert.Len(t, catalog.List(), 5)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc, catalog := newService()

	before, err := catalog.Get("proj-1")
	require.NoError(t, err)

	p, err := svc.Update(ctx, admin, "proj-1", domain.Draft{Title: "Renamed", Description: "New", Category: "cat-2", Price: 9000})
	require.NoError(t, err)
	assert.Equal(t, "proj-1", p.ID)
	assert.Equal(t, before.CreatedAt, p.CreatedAt)
	assert.Equal(t, before.Chapters, p.Chapters)

	got, err := catalog.Get("proj-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, int64(9000), got.Price)

	p, err = svc.Update(ctx, admin, "proj-1", domain.Draft{
		Title: "Renamed", Description: "New", Category: "cat-2",
		Chapters: []domain.Chapter{{Content: "only"}},
	})
	require.NoError(t, err)
	require.Len(t, p.Chapters, 1)
	assert.Equal(t, "chap-1", p.Chapters[0].ID)

	_, err = svc.Update(ctx, admin, "missing", domain.Draft{Title: "T", Description: "D", Category: "cat-1"})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, catalog := newService()

	require.NoError(t, svc.Delete(ctx, admin, "proj-2"))
	_, err := catalog.Get("proj-2")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, admin, "proj-2"), domain.ErrProjectNotFound)
}

func TestRequestReview(t *testing.T) {
	ctx := context.Background()

	t.Run("approve", func(t *testing.T) {
		svc, _ := newService()
		pending, err := svc.PendingRequests(admin)
		require.NoError(t, err)
		require.Len(t, pending, 1)

		req, err := svc.ApproveRequest(ctx, admin, pending[0].ID)
		require.NoError(t, err)
		assert.True(t, req.Completed)

		pending, err = svc.PendingRequests(admin)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("reject", func(t *testing.T) {
		svc, _ := newService()
		req, err := svc.RejectRequest(ctx, admin, "req-1")
		require.NoError(t, err)
		assert.False(t, req.Paid)
		assert.False(t, req.Completed)

		pending, err := svc.PendingRequests(admin)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("unknown request", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.ApproveRequest(ctx, admin, "req-404")
		assert.ErrorIs(t, err, requestsdomain.ErrRequestNotFound)
	})
}
