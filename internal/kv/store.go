// Package kv is the small key-value store the editor persists into. It stands
// in for browser local storage: string keys, opaque byte values and a total
// size quota.
package kv

import (
	"context"
	"errors"
)

// DefaultQuota matches the usual browser local storage allowance.
const DefaultQuota = 5 << 20

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("kv: key not found")
	// ErrQuotaExceeded is returned by Set when the write would exceed the quota.
	ErrQuotaExceeded = errors.New("kv: storage quota exceeded")
)

// Store is implemented by every backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}
