package ports

import (
	"context"
	"time"
)

// TokenRevoker tracks tokens invalidated before their natural expiry.
type TokenRevoker interface {
	// Revoke marks tokenID invalid for ttl (the token's remaining life).
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
