package ports

import (
	"context"

	"github.com/openboard/forum-api/internal/core/domain"
)

// ThreadService implements thread CRUD with ownership enforcement.
type ThreadService interface {
	Create(ctx context.Context, p *domain.Principal, title, initialMessage string) (*domain.Thread, error)
	List(ctx context.Context) ([]domain.Thread, error)
	Get(ctx context.Context, id string) (*domain.Thread, error)
	Update(ctx context.Context, p *domain.Principal, id, title, initialMessage string) (*domain.Thread, error)
	// Delete removes the thread and all of its posts atomically.
	Delete(ctx context.Context, p *domain.Principal, id string) error
}
