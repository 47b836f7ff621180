// Package sessionstore defines the port interface for server-side session
// persistence with per-entry TTL.
package sessionstore

import (
	"context"
	"time"
)

// Store is the port interface for session state keyed by opaque token.
// Set with a fresh TTL on every touch gives sliding expiration.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
