package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openboard/forum-api/internal/core/domain"
)

const collectionModerationLog = "moderation_log"

// AuditRepository persists moderation audit entries.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(collectionModerationLog)}
}

type auditDoc struct {
	Action     string    `bson:"action"`
	ActorID    string    `bson:"actor_id"`
	Actor      string    `bson:"actor"`
	TargetID   string    `bson:"target_id"`
	OccurredAt time.Time `bson:"occurred_at"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry domain.AuditEntry) error {
	doc := auditDoc{
		Action:     entry.Action,
		ActorID:    entry.ActorID,
		Actor:      entry.Actor,
		TargetID:   entry.TargetID,
		OccurredAt: entry.OccurredAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
