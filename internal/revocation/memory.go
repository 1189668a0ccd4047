package revocation

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps revoked token IDs in process memory. Suitable for a
// single-instance deployment; revocations are lost on restart, which only
// shortens the window in which a logged-out token is rejected early.
type MemoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore creates an in-process revocation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: gocache.New(gocache.NoExpiration, time.Minute)}
}

// Revoke marks a token ID as revoked for the given duration.
func (s *MemoryStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.c.Set(tokenID, struct{}{}, ttl)
	return nil
}

// IsRevoked reports whether a token ID has been revoked.
func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, found := s.c.Get(tokenID)
	return found, nil
}

// Close is a no-op for the in-process store.
func (s *MemoryStore) Close() error {
	return nil
}
