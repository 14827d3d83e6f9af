package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/docusphere/docusphere-backend/config"
	"github.com/docusphere/docusphere-backend/internal/storage"
	"github.com/docusphere/docusphere-backend/internal/storage/memory"
	"github.com/docusphere/docusphere-backend/internal/storage/postgres"
	"github.com/docusphere/docusphere-backend/internal/storage/redisstore"
	"github.com/docusphere/docusphere-backend/internal/storage/sqlite"
)

// OpenStorage opens the backend named by cfg.Storage.Driver.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	driver := strings.ToLower(cfg.Storage.Driver)

	var (
		s   storage.Store
		err error
	)
	switch driver {
	case "memory":
		s = memory.New()
	case "sqlite":
		s, err = sqlite.Open(cfg.Storage.SQLitePath)
	case "redis":
		s, err = redisstore.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.KeyPrefix)
	case "postgres":
		s, err = openPostgres(ctx, cfg.Database)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", driver, err)
	}

	logger.Info("storage ready", zap.String("driver", driver))
	return s, nil
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (storage.Store, error) {
	pool, err := postgres.OpenPool(ctx, postgres.PoolOptions{
		DSN:      cfg.DSN,
		MaxConns: cfg.MaxConns,
		MinConns: cfg.MinConns,
	})
	if err != nil {
		return nil, err
	}
	s, err := postgres.New(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}
