package ports

import (
	"context"
	"time"

	"github.com/openboard/forum-api/internal/core/domain"
)

// AuthService implements registration, login and logout.
type AuthService interface {
	// Register creates an account with the Member role and returns the user
	// plus a freshly issued token.
	Register(ctx context.Context, username, password string) (*domain.User, string, error)
	// Login verifies credentials and returns the user plus a fresh token.
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	// Logout revokes the presented token until it would have expired anyway.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}
