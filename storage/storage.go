// Package storage is the keyed blob store the session facade snapshots its
// state into. Each key holds one serialized collection.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Keys of the four persisted blobs.
const (
	KeySession  = "user"
	KeyAccounts = "users"
	KeyOrders   = "orders"
	KeyLedger   = "blockchain"
)

// ErrNotFound is returned by Get when the key has never been written or was removed.
var ErrNotFound = errors.New("storage: key not found")

// KV is a flat key-value store of opaque blobs.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Load decodes the blob under key into dst. It reports false, without
// touching dst, when the key is absent.
func Load(ctx context.Context, kv KV, key string, dst any) (bool, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: read %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("storage: decode %q: %w", key, err)
	}
	return true, nil
}

// Save encodes v and writes it under key, replacing the previous blob.
func Save(ctx context.Context, kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %q: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	return nil
}
