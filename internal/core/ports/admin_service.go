package ports

import (
	"context"

	"github.com/openboard/forum-api/internal/core/domain"
)

// AdminService implements moderation operations. Callers must already have
// passed the Moderate authorization check.
type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	// BanUser removes the user, every thread they authored, and every post
	// they authored or that lived in one of their threads — all inside one
	// transaction. Returns the banned user's id.
	BanUser(ctx context.Context, actor *domain.Principal, username string) (string, error)
	DeletePost(ctx context.Context, actor *domain.Principal, id string) error
	DeleteThread(ctx context.Context, actor *domain.Principal, id string) error
}
