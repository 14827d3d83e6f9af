package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	authdomain "github.com/docusphere/docusphere-backend/internal/auth/domain"
	authrepo "github.com/docusphere/docusphere-backend/internal/auth/repository"
	authservice "github.com/docusphere/docusphere-backend/internal/auth/service"
	cartservice "github.com/docusphere/docusphere-backend/internal/cart/service"
	catalogdomain "github.com/docusphere/docusphere-backend/internal/catalog/domain"
	"github.com/docusphere/docusphere-backend/internal/storage/memory"
)

type fixture struct {
	manager *authservice.Manager
	session *authservice.SessionStore
	carts   *cartservice.Loader
	user    *authdomain.User
}

func newFixture(t *testing.T, signIn bool) *fixture {
	t.Helper()
	local := memory.New()
	logger := zap.NewNop()

	m := authservice.NewManager(
		authrepo.NewUserRepository(local, logger),
		authrepo.NewCredentialRepository(local, bcrypt.MinCost, logger),
		nil, local, authservice.AdminCredentials{}, logger,
	)
	f := &fixture{manager: m, session: m.ForDevice("dev-1"), carts: cartservice.NewLoader(local, logger)}
	if signIn {
		u, err := f.session.Signup(context.Background(), "Ada", "Obi", "ada@example.com", "secret")
		require.NoError(t, err)
		f.user = u
	}
	return f
}

// cart reads the device cart as it is stored right now.
func (f *fixture) cart(t *testing.T) *cartservice.Engine {
	t.Helper()
	e, err := f.carts.Load(context.Background(), "dev-1")
	require.NoError(t, err)
	return e
}

func (f *fixture) add(t *testing.T, id string, price int64) {
	t.Helper()
	require.NoError(t, f.cart(t).AddToCart(context.Background(), catalogdomain.Project{ID: id, Price: price}))
}

func (f *fixture) service(pacer Pacer) *CheckoutService {
	return NewCheckoutService(pacer, f.carts, zap.NewNop())
}

func cartIDs(e *cartservice.Engine) []string {
	ids := []string{}
	for _, it := range e.Items() {
		ids = append(ids, it.ProjectID)
	}
	return ids
}

func TestCheckoutRecordsEveryItem(t *testing.T) {
	f := newFixture(t, true)
	f.add(t, "proj-1", 5000)
	f.add(t, "proj-2", 7500)

	op, err := f.service(NoDelay).Checkout(context.Background(), "dev-1", f.session, f.cart(t))
	require.NoError(t, err)

	assert.Equal(t, StatusSucceeded, op.Status)
	assert.Equal(t, int64(12500), op.Total)
	assert.Equal(t, []string{"proj-1", "proj-2"}, op.Purchased)
	assert.Empty(t, op.Failed)
	assert.NotNil(t, op.CompletedAt)

	user := f.session.GetCurrentUser()
	assert.True(t, user.HasPurchased("proj-1"))
	assert.True(t, user.HasPurchased("proj-2"))
	assert.Equal(t, 0, f.cart(t).Len())
}

func TestCheckoutPreconditions(t *testing.T) {
	anon := newFixture(t, false)
	anon.add(t, "proj-1", 5000)
	_, err := anon.service(NoDelay).Checkout(context.Background(), "dev-1", anon.session, anon.cart(t))
	assert.ErrorIs(t, err, authdomain.ErrAuthRequired)
	assert.Equal(t, 1, anon.cart(t).Len())

	empty := newFixture(t, true)
	_, err = empty.service(NoDelay).Checkout(context.Background(), "dev-1", empty.session, empty.cart(t))
	assert.ErrorIs(t, err, ErrEmptyCart)
}

type flakySession struct {
	user *authdomain.User
	fail string
}

func (s *flakySession) GetCurrentUser() *authdomain.User { return s.user }

func (s *flakySession) AddPurchasedProject(_ context.Context, _ string, projectID string) (bool, error) {
	if projectID == s.fail {
		return false, errors.New("directory unavailable")
	}
	return true, nil
}

func TestCheckoutPartialFailure(t *testing.T) {
	f := newFixture(t, false)
	f.add(t, "proj-1", 5000)
	f.add(t, "proj-2", 7500)

	session := &flakySession{user: &authdomain.User{ID: "user-9"}, fail: "proj-1"}
	svc := f.service(NoDelay)
	op, err := svc.Checkout(context.Background(), "dev-1", session, f.cart(t))
	require.NoError(t, err)

	assert.Equal(t, StatusSucceeded, op.Status)
	assert.Equal(t, []string{"proj-2"}, op.Purchased)
	require.Len(t, op.Failed, 1)
	assert.Equal(t, "proj-1", op.Failed[0].ProjectID)
	assert.Equal(t, []string{"proj-1"}, cartIDs(f.cart(t)))

	op, err = svc.Checkout(context.Background(), "dev-1", session, f.cart(t))
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, op.Status)
	assert.NotEmpty(t, op.Error)
	assert.Equal(t, []string{"proj-1"}, cartIDs(f.cart(t)))
}

type blockingPacer struct {
	release chan struct{}
}

func (p blockingPacer) Wait(ctx context.Context) error {
	select {
	case <-p.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestStartRunsInBackground(t *testing.T) {
	f := newFixture(t, true)
	f.add(t, "proj-1", 5000)

	pacer := blockingPacer{release: make(chan struct{})}
	svc := f.service(pacer)

	ctx, cancel := context.WithCancel(context.Background())
	op, err := svc.Start(ctx, "dev-1", f.session, f.cart(t))
	require.NoError(t, err)
	cancel()
	assert.Equal(t, StatusPending, op.Status)

	got, err := svc.Get(op.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)

	close(pacer.release)
	svc.Wait()

	got, err = svc.Get(op.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, got.Status)
	assert.Equal(t, []string{"proj-1"}, got.Purchased)

	_, err = svc.Get("missing")
	assert.ErrorIs(t, err, ErrOperationNotFound)
}

func TestCheckoutInterruptedKeepsCart(t *testing.T) {
	f := newFixture(t, true)
	f.add(t, "proj-1", 5000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	op, err := f.service(DelayPacer(time.Hour)).Checkout(ctx, "dev-1", f.session, f.cart(t))
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, op.Status)
	assert.Equal(t, 1, f.cart(t).Len())
	assert.False(t, f.session.GetCurrentUser().HasPurchased("proj-1"))
}

func TestCheckoutSettlesAgainstLiveDeviceState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.add(t, "proj-1", 5000)

	pacer := blockingPacer{release: make(chan struct{})}
	svc := f.service(pacer)
	op, err := svc.Start(ctx, "dev-1", f.session, f.cart(t))
	require.NoError(t, err)

	// While payment is pending the device signs out and adds another item.
	require.NoError(t, f.manager.ForDevice("dev-1").Logout(ctx))
	f.add(t, "proj-2", 7500)

	close(pacer.release)
	svc.Wait()

	got, err := svc.Get(op.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, got.Status)

	assert.Nil(t, f.manager.ForDevice("dev-1").CheckSession(ctx, ""))
	owner, err := f.manager.Users().GetByID(f.user.ID)
	require.NoError(t, err)
	assert.True(t, owner.HasPurchased("proj-1"))

	assert.Equal(t, []string{"proj-2"}, cartIDs(f.cart(t)))
}
