package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/openboard/forum-api/internal/core/authz"
	"github.com/openboard/forum-api/internal/core/domain"
	"github.com/openboard/forum-api/internal/core/ports"
)

const (
	titleMinLen   = 3
	titleMaxLen   = 50
	initialMinLen = 3
	initialMaxLen = 500
)

// ThreadService implements thread CRUD. Ownership checks go through the
// authz policy; the cascade to posts runs inside one transaction.
type ThreadService struct {
	threads ports.ThreadRepository
	posts   ports.PostRepository
	users   ports.UserRepository
	tx      ports.TxRunner
	logger  zerolog.Logger
}

func NewThreadService(threads ports.ThreadRepository, posts ports.PostRepository, users ports.UserRepository, tx ports.TxRunner, logger zerolog.Logger) *ThreadService {
	return &ThreadService{threads: threads, posts: posts, users: users, tx: tx, logger: logger}
}

func (s *ThreadService) Create(ctx context.Context, p *domain.Principal, title, initialMessage string) (*domain.Thread, error) {
	if err := authz.Authorize(p, authz.AuthorContent, ""); err != nil {
		return nil, err
	}
	if err := checkThreadBounds(title, initialMessage); err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	thread := &domain.Thread{
		Title:          title,
		InitialMessage: initialMessage,
		Published:      time.Now().UTC(),
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
	}

	created, err := s.threads.Insert(ctx, thread)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("thread_id", created.ID).Str("author", author.Username).Msg("thread created")
	return created, nil
}

func (s *ThreadService) List(ctx context.Context) ([]domain.Thread, error) {
	return s.threads.FindAll(ctx)
}

func (s *ThreadService) Get(ctx context.Context, id string) (*domain.Thread, error) {
	return s.threads.FindByID(ctx, id)
}

func (s *ThreadService) Update(ctx context.Context, p *domain.Principal, id, title, initialMessage string) (*domain.Thread, error) {
	thread, err := s.threads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(p, authz.MutateOwnContent, thread.AuthorID); err != nil {
		return nil, err
	}
	if err := checkThreadBounds(title, initialMessage); err != nil {
		return nil, err
	}

	// The thread may vanish between the read above and this write; the
	// repository reports that as not-found rather than a silent no-op.
	if err := s.threads.Update(ctx, id, title, initialMessage); err != nil {
		return nil, err
	}

	thread.Title = title
	thread.InitialMessage = initialMessage
	return thread, nil
}

func (s *ThreadService) Delete(ctx context.Context, p *domain.Principal, id string) error {
	thread, err := s.threads.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(p, authz.MutateOwnContent, thread.AuthorID); err != nil {
		return err
	}

	if err := deleteThreadCascade(ctx, s.tx, s.posts, s.threads, id); err != nil {
		return err
	}

	s.logger.Info().Str("thread_id", id).Str("actor", p.Username).Msg("thread deleted")
	return nil
}

// deleteThreadCascade removes a thread's posts and then the thread itself
// inside one transaction, so a concurrent reader never observes the thread
// without its posts or vice versa. Shared by owner and admin deletion paths.
func deleteThreadCascade(ctx context.Context, tx ports.TxRunner, posts ports.PostRepository, threads ports.ThreadRepository, id string) error {
	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := posts.DeleteByThread(ctx, id); err != nil {
			return err
		}
		return threads.Delete(ctx, id)
	})
	if err != nil && !errors.Is(err, domain.ErrThreadNotFound) {
		return fmt.Errorf("%w: delete thread %s: %v", domain.ErrInternal, id, err)
	}
	return err
}

func checkThreadBounds(title, initialMessage string) error {
	if l := len(title); l < titleMinLen || l > titleMaxLen {
		return fmt.Errorf("%w: title must be %d-%d characters", domain.ErrValidation, titleMinLen, titleMaxLen)
	}
	if l := len(initialMessage); l < initialMinLen || l > initialMaxLen {
		return fmt.Errorf("%w: initial message must be %d-%d characters", domain.ErrValidation, initialMinLen, initialMaxLen)
	}
	return nil
}
