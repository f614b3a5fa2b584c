package ports

import (
	"context"

	"github.com/openboard/forum-api/internal/core/domain"
)

// PostPage is one page of posts plus the pagination block returned to
// clients.
type PostPage struct {
	PerPage     int
	Count       int
	Total       int
	LastPage    int
	CurrentPage int
	Posts       []domain.Post
}

// PostService implements post CRUD and paginated listing.
type PostService interface {
	Create(ctx context.Context, p *domain.Principal, threadID, message string) (*domain.Post, error)
	// ListByThread pages through a thread's posts, newest first. A thread
	// with zero posts yields domain.ErrPostNotFound; a page outside
	// [1, lastPage] yields domain.ErrValidation.
	ListByThread(ctx context.Context, threadID string, currentPage, perPage int) (*PostPage, error)
	Update(ctx context.Context, p *domain.Principal, id, message string) (*domain.Post, error)
	Delete(ctx context.Context, p *domain.Principal, id string) error
}
