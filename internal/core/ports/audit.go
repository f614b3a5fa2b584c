package ports

import (
	"context"

	"github.com/openboard/forum-api/internal/core/domain"
)

// AuditRecorder accepts moderation audit entries for asynchronous
// persistence. Record must not block the request path.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}
