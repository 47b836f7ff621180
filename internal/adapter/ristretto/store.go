// Package ristretto implements the session store port using
// dgraph-io/ristretto as an in-process store with per-entry TTL.
package ristretto

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Store holds serialized sessions keyed by opaque token. Expiry is
// enforced by ristretto's TTL; callers re-Set on every touch to slide it.
type Store struct {
	c *ristretto.Cache[string, []byte]
}

// New creates a ristretto-backed session store. maxCostBytes is the maximum
// total size of stored sessions in bytes.
func New(maxCostBytes int64) (*Store, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxCostBytes / 100 * 10, // ~10x expected items
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

// Get retrieves a session payload.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, found := s.c.Get(key)
	if !found {
		return nil, false, nil
	}
	return val, true, nil
}

// Set stores a session payload with the given TTL. Set is buffered in
// ristretto; Wait makes the write visible to an immediately following Get,
// which the login flow relies on.
func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.c.SetWithTTL(key, value, int64(len(value)), ttl)
	s.c.Wait()
	return nil
}

// Delete removes a session.
func (s *Store) Delete(_ context.Context, key string) error {
	s.c.Del(key)
	return nil
}

// Close shuts down the store and releases resources.
func (s *Store) Close() {
	s.c.Close()
}
