// Package redisstore stores records in Redis. Shared stores (catalog, users,
// requests) are loaded once at startup and written back whole, so run a
// single API replica per key prefix.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/docusphere/docusphere-backend/internal/storage"
	"github.com/redis/go-redis/v9"
)

// Store handles Redis operations for local-storage records
type Store struct {
	client *redis.Client
	prefix string
}

// New wraps an existing client. Every key is stored as prefix+key.
func New(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Dial opens a client and checks the connection.
func Dial(ctx context.Context, addr, password string, db int, prefix string) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return New(client, prefix), nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return data, nil
}

// Set writes without a TTL; records live until removed.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(k string) string {
	return fmt.Sprintf("%s%s", s.prefix, k)
}
