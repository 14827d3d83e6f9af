// Package postgres keeps local-storage records in a single Postgres table.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/docusphere/docusphere-backend/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of *pgxpool.Pool the store needs.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type Store struct {
	db   querier
	pool *pgxpool.Pool
}

// New wraps an open pool and creates the table if it does not exist.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	s := &Store{db: pool, pool: pool}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	const q = `
create table if not exists local_storage (
  key text primary key,
  value bytea not null,
  updated_at timestamptz not null default now()
);`
	if _, err := s.db.Exec(ctx, q); err != nil {
		return fmt.Errorf("migrate local_storage: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `select value from local_storage where key = $1;`

	var value []byte
	err := s.db.QueryRow(ctx, q, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	const q = `
insert into local_storage (key, value, updated_at)
values ($1, $2, now())
on conflict (key) do update
set value = excluded.value, updated_at = now();`

	if _, err := s.db.Exec(ctx, q, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `delete from local_storage where key = $1;`, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
