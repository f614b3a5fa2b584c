package domain

import "time"

// Moderation audit actions.
const (
	AuditBanUser      = "ban_user"
	AuditDeletePost   = "delete_post"
	AuditDeleteThread = "delete_thread"
)

// AuditEntry records a completed moderation action. Entries are persisted
// asynchronously, off the request path.
type AuditEntry struct {
	Action     string    `json:"action"`
	ActorID    string    `json:"actorId"`
	Actor      string    `json:"actor"`
	TargetID   string    `json:"targetId"`
	OccurredAt time.Time `json:"occurredAt"`
}
