// Package kv provides the key-value blob store that catalogue snapshots are
// written to. Each key holds one complete JSON document; writes replace the
// whole value.
package kv

import (
	"context"
	"time"
)

// Record describes a stored key without its value.
type Record struct {
	Key       string    `json:"key"`
	Size      int       `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store defines the key-value storage interface.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// PutMany replaces several keys atomically: either every value is
	// written or none is.
	PutMany(ctx context.Context, values map[string][]byte) error

	// List describes every stored key, ordered by key.
	List(ctx context.Context) ([]Record, error)

	// Close closes the store.
	Close() error
}
