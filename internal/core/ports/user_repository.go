package ports

import (
	"context"

	"github.com/openboard/forum-api/internal/core/domain"
)

// UserRepository persists forum accounts. Username uniqueness is enforced
// here (unique index); Create returns domain.ErrUserExists on collision.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
}
