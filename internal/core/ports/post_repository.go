package ports

import (
	"context"

	"github.com/openboard/forum-api/internal/core/domain"
)

// PostRepository persists posts.
type PostRepository interface {
	Insert(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// FindByThread returns a newest-first page of posts in a thread.
	FindByThread(ctx context.Context, threadID string, offset, limit int) ([]domain.Post, error)
	CountByThread(ctx context.Context, threadID string) (int, error)
	// Update rewrites the post message. Returns domain.ErrPostNotFound when
	// the post no longer exists.
	Update(ctx context.Context, id, message string) error
	// Delete removes one post. Returns domain.ErrPostNotFound when nothing
	// matched.
	Delete(ctx context.Context, id string) error
	DeleteByThread(ctx context.Context, threadID string) error
	// DeleteByAuthorOrThreads removes every post authored by authorID or
	// belonging to any of threadIDs (the ban cascade).
	DeleteByAuthorOrThreads(ctx context.Context, authorID string, threadIDs []string) error
}
