package ports

import (
	"context"

	"github.com/openboard/forum-api/internal/core/domain"
)

// ThreadRepository persists threads.
type ThreadRepository interface {
	Insert(ctx context.Context, thread *domain.Thread) (*domain.Thread, error)
	FindByID(ctx context.Context, id string) (*domain.Thread, error)
	// FindAll returns every thread, newest first.
	FindAll(ctx context.Context) ([]domain.Thread, error)
	FindIDsByAuthor(ctx context.Context, authorID string) ([]string, error)
	// Update rewrites title and initial message. Returns
	// domain.ErrThreadNotFound when the thread no longer exists.
	Update(ctx context.Context, id, title, initialMessage string) error
	// Delete removes one thread. Returns domain.ErrThreadNotFound when
	// nothing matched.
	Delete(ctx context.Context, id string) error
	DeleteByAuthor(ctx context.Context, authorID string) error
}
