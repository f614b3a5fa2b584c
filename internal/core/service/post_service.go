package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/openboard/forum-api/internal/core/authz"
	"github.com/openboard/forum-api/internal/core/domain"
	"github.com/openboard/forum-api/internal/core/ports"
)

const (
	messageMinLen = 3
	messageMaxLen = 400
)

// PostService implements post CRUD and paginated listing.
type PostService struct {
	posts   ports.PostRepository
	threads ports.ThreadRepository
	users   ports.UserRepository
	logger  zerolog.Logger
}

func NewPostService(posts ports.PostRepository, threads ports.ThreadRepository, users ports.UserRepository, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, threads: threads, users: users, logger: logger}
}

func (s *PostService) Create(ctx context.Context, p *domain.Principal, threadID, message string) (*domain.Post, error) {
	if err := authz.Authorize(p, authz.AuthorContent, ""); err != nil {
		return nil, err
	}
	if err := checkMessageBounds(message); err != nil {
		return nil, err
	}

	if _, err := s.threads.FindByID(ctx, threadID); err != nil {
		return nil, err
	}
	author, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		ThreadID:       threadID,
		Message:        message,
		Published:      time.Now().UTC(),
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
	}

	created, err := s.posts.Insert(ctx, post)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("post_id", created.ID).Str("thread_id", threadID).Str("author", author.Username).Msg("post created")
	return created, nil
}

// ListByThread pages through a thread's posts, newest first.
//
// A thread with zero posts is reported as not-found rather than as an empty
// page; pages outside [1, lastPage] are validation errors. Clients depend on
// both boundaries.
func (s *PostService) ListByThread(ctx context.Context, threadID string, currentPage, perPage int) (*ports.PostPage, error) {
	if perPage < 1 {
		return nil, fmt.Errorf("%w: perPage must be at least 1", domain.ErrValidation)
	}

	total, err := s.posts.CountByThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, domain.ErrPostNotFound
	}

	lastPage := (total + perPage - 1) / perPage
	if currentPage < 1 || currentPage > lastPage {
		return nil, fmt.Errorf("%w: currentPage must be between 1 and %d", domain.ErrValidation, lastPage)
	}

	posts, err := s.posts.FindByThread(ctx, threadID, (currentPage-1)*perPage, perPage)
	if err != nil {
		return nil, err
	}

	return &ports.PostPage{
		PerPage:     perPage,
		Count:       len(posts),
		Total:       total,
		LastPage:    lastPage,
		CurrentPage: currentPage,
		Posts:       posts,
	}, nil
}

func (s *PostService) Update(ctx context.Context, p *domain.Principal, id, message string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.MutateOwnContent, post.AuthorID); err != nil {
		return nil, err
	}
	if err := checkMessageBounds(message); err != nil {
		return nil, err
	}

	if err := s.posts.Update(ctx, id, message); err != nil {
		return nil, err
	}

	post.Message = message
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, p *domain.Principal, id string) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(p, authz.MutateOwnContent, post.AuthorID); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("post_id", id).Str("actor", p.Username).Msg("post deleted")
	return nil
}

func checkMessageBounds(message string) error {
	if l := len(message); l < messageMinLen || l > messageMaxLen {
		return fmt.Errorf("%w: message must be %d-%d characters", domain.ErrValidation, messageMinLen, messageMaxLen)
	}
	return nil
}
