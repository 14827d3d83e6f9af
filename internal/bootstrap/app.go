package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/config"
	adminservice "github.com/docusphere/docusphere-backend/internal/admin/service"
	"github.com/docusphere/docusphere-backend/internal/auth"
	authdomain "github.com/docusphere/docusphere-backend/internal/auth/domain"
	authrepo "github.com/docusphere/docusphere-backend/internal/auth/repository"
	authservice "github.com/docusphere/docusphere-backend/internal/auth/service"
	cartservice "github.com/docusphere/docusphere-backend/internal/cart/service"
	catalogrepo "github.com/docusphere/docusphere-backend/internal/catalog/repository"
	catalogservice "github.com/docusphere/docusphere-backend/internal/catalog/service"
	checkoutservice "github.com/docusphere/docusphere-backend/internal/checkout/service"
	requestsdomain "github.com/docusphere/docusphere-backend/internal/requests/domain"
	requestsrepo "github.com/docusphere/docusphere-backend/internal/requests/repository"
	requestsservice "github.com/docusphere/docusphere-backend/internal/requests/service"
	"github.com/docusphere/docusphere-backend/internal/storage"
)

// App owns every shared store and service. Nothing here is a package-level
// global; tests build their own App over a memory store.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Storage storage.Store

	CatalogStore *catalogrepo.Store
	Users        *authrepo.UserRepository
	Credentials  *authrepo.CredentialRepository
	RequestRepo  *requestsrepo.Repo

	Sessions *authservice.Manager
	Carts    *cartservice.Loader
	Catalog  *catalogservice.CatalogService
	Requests *requestsservice.RequestService
	Checkout *checkoutservice.CheckoutService
	Admin    *adminservice.AdminService
}

// Options let callers swap parts that are awkward in tests.
type Options struct {
	Pacer           checkoutservice.Pacer
	SessionProvider authdomain.SessionProvider
	BcryptCost      int
}

// Build opens storage, restores the shared snapshots and wires services.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger, opt Options) (*App, error) {
	local, err := OpenStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	app, err := Assemble(ctx, cfg, local, logger, opt)
	if err != nil {
		_ = local.Close()
		return nil, err
	}
	return app, nil
}

// Assemble wires an App over an already open store.
func Assemble(ctx context.Context, cfg *config.Config, local storage.Store, logger *zap.Logger, opt Options) (*App, error) {
	app := &App{
		Config:       cfg,
		Logger:       logger,
		Storage:      local,
		CatalogStore: catalogrepo.NewStore(local, logger.Named("catalog")),
		Users:        authrepo.NewUserRepository(local, logger.Named("users")),
		Credentials:  authrepo.NewCredentialRepository(local, opt.BcryptCost, logger.Named("credentials")),
		RequestRepo:  requestsrepo.New(local, logger.Named("requests")),
	}

	loaders := []struct {
		name string
		load func(context.Context) error
	}{
		{"catalog", app.CatalogStore.Load},
		{"users", app.Users.Load},
		{"credentials", app.Credentials.Load},
		{"requests", app.RequestRepo.Load},
	}
	for _, l := range loaders {
		if err := l.load(ctx); err != nil {
			return nil, fmt.Errorf("restore %s: %w", l.name, err)
		}
	}
	if _, err := app.Users.EnsureAdmin(ctx, cfg.Auth.AdminEmail); err != nil {
		return nil, fmt.Errorf("administrator account: %w", err)
	}

	provider := opt.SessionProvider
	if provider == nil && cfg.Firebase.CredentialsPath != "" {
		client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			return nil, err
		}
		provider = auth.NewFirebaseSessionProvider(client)
		logger.Info("firebase session provider enabled")
	}

	pacer := opt.Pacer
	if pacer == nil {
		pacer = checkoutservice.DelayPacer(cfg.Checkout.ConfirmDelay)
	}

	app.Sessions = authservice.NewManager(
		app.Users,
		app.Credentials,
		provider,
		local,
		authservice.AdminCredentials{Email: cfg.Auth.AdminEmail, Password: cfg.Auth.AdminPassword},
		logger.Named("sessions"),
	)
	app.Carts = cartservice.NewLoader(local, logger.Named("cart"))
	app.Catalog = catalogservice.NewCatalogService(app.CatalogStore)
	app.Requests = requestsservice.NewRequestService(app.RequestRepo, cfg.Requests.Fee, BankDetails(cfg), logger.Named("requests"))
	app.Checkout = checkoutservice.NewCheckoutService(pacer, app.Carts, logger.Named("checkout"))
	app.Admin = adminservice.NewAdminService(app.CatalogStore, app.Requests, logger.Named("admin"))

	return app, nil
}

func BankDetails(cfg *config.Config) requestsdomain.BankDetails {
	return requestsdomain.BankDetails{
		AccountName:   cfg.Requests.AccountName,
		AccountNumber: cfg.Requests.AccountNumber,
		BankName:      cfg.Requests.BankName,
	}
}

// Close waits for in-flight checkouts and releases storage.
func (a *App) Close() error {
	a.Checkout.Wait()
	return a.Storage.Close()
}
