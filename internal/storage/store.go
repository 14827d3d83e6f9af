// Package storage defines the durable key/value store that stands in for
// per-device local storage. Records are JSON documents under fixed keys,
// namespaced either by device or globally.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("storage: key not found")
	ErrMalformed = errors.New("storage: malformed record")
)

// Record names used under a namespace.
const (
	CartRecord        = "cart"
	SessionRecord     = "currentUser"
	CatalogRecord     = "catalog"
	RequestsRecord    = "requests"
	UsersRecord       = "users"
	CredentialsRecord = "credentials"
)

// Store is implemented by the memory, sqlite, redis and postgres backends.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// DeviceKey scopes a record to one client device.
func DeviceKey(deviceID, record string) string {
	return fmt.Sprintf("device:%s:%s", deviceID, record)
}

// GlobalKey scopes a record to the whole storefront.
func GlobalKey(record string) string {
	return "global:" + record
}

// LoadJSON decodes the record at key into v. A missing key yields ErrNotFound
// and undecodable data yields an error wrapping ErrMalformed.
func LoadJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return nil
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
