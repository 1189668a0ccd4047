// Package revocation tracks revoked token IDs so that logged-out tokens are
// rejected before their natural expiry.
package revocation

import (
	"context"
	"time"
)

// Store records revoked token IDs. Entries only need to live as long as the
// token they revoke, so every Revoke call carries a TTL.
type Store interface {
	// Revoke marks a token ID as revoked for the given duration.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether a token ID has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}
