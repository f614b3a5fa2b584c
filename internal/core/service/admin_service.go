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

// AdminService implements moderation. Banning a user touches three
// collections transitively and is the operation with the strictest
// atomicity requirement in the system.
type AdminService struct {
	users   ports.UserRepository
	threads ports.ThreadRepository
	posts   ports.PostRepository
	tx      ports.TxRunner
	audit   ports.AuditRecorder
	logger  zerolog.Logger
}

func NewAdminService(users ports.UserRepository, threads ports.ThreadRepository, posts ports.PostRepository, tx ports.TxRunner, audit ports.AuditRecorder, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, threads: threads, posts: posts, tx: tx, audit: audit, logger: logger}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

// BanUser removes, inside one transaction: every post the user authored or
// that lived in one of their threads, every thread they authored, and the
// user record itself. Any mid-transaction failure rolls everything back.
func (s *AdminService) BanUser(ctx context.Context, actor *domain.Principal, username string) (string, error) {
	if err := authz.Authorize(actor, authz.Moderate, ""); err != nil {
		return "", err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		threadIDs, err := s.threads.FindIDsByAuthor(ctx, user.ID)
		if err != nil {
			return err
		}
		if err := s.posts.DeleteByAuthorOrThreads(ctx, user.ID, threadIDs); err != nil {
			return err
		}
		if err := s.threads.DeleteByAuthor(ctx, user.ID); err != nil {
			return err
		}
		return s.users.Delete(ctx, user.ID)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("ban transaction failed")
		return "", fmt.Errorf("%w: ban rolled back: %v", domain.ErrInternal, err)
	}

	s.logger.Info().Str("username", username).Str("actor", actor.Username).Msg("user banned")
	s.record(actor, domain.AuditBanUser, user.ID)
	return user.ID, nil
}

// DeletePost force-deletes a post regardless of ownership.
func (s *AdminService) DeletePost(ctx context.Context, actor *domain.Principal, id string) error {
	if err := authz.Authorize(actor, authz.Moderate, ""); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("post_id", id).Str("actor", actor.Username).Msg("post force-deleted")
	s.record(actor, domain.AuditDeletePost, id)
	return nil
}

// DeleteThread force-deletes a thread and its posts regardless of ownership.
func (s *AdminService) DeleteThread(ctx context.Context, actor *domain.Principal, id string) error {
	if err := authz.Authorize(actor, authz.Moderate, ""); err != nil {
		return err
	}

	if _, err := s.threads.FindByID(ctx, id); err != nil {
		return err
	}

	if err := deleteThreadCascade(ctx, s.tx, s.posts, s.threads, id); err != nil {
		return err
	}

	s.logger.Info().Str("thread_id", id).Str("actor", actor.Username).Msg("thread force-deleted")
	s.record(actor, domain.AuditDeleteThread, id)
	return nil
}

func (s *AdminService) record(actor *domain.Principal, action, targetID string) {
	s.audit.Record(domain.AuditEntry{
		Action:     action,
		ActorID:    actor.UserID,
		Actor:      actor.Username,
		TargetID:   targetID,
		OccurredAt: time.Now().UTC(),
	})
}
