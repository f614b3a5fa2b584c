package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openboard/forum-api/internal/core/domain"
)

const collectionThreads = "threads"

type ThreadRepository struct {
	coll *mongo.Collection
}

func NewThreadRepository(db *mongo.Database) *ThreadRepository {
	return &ThreadRepository{coll: db.Collection(collectionThreads)}
}

type threadDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Title          string             `bson:"title"`
	InitialMessage string             `bson:"initial_message"`
	Published      time.Time          `bson:"published"`
	AuthorID       primitive.ObjectID `bson:"author_id"`
	AuthorUsername string             `bson:"author_username"`
}

func (d threadDoc) toDomain() *domain.Thread {
	return &domain.Thread{
		ID:             d.ID.Hex(),
		Title:          d.Title,
		InitialMessage: d.InitialMessage,
		Published:      d.Published.UTC(),
		AuthorID:       d.AuthorID.Hex(),
		AuthorUsername: d.AuthorUsername,
	}
}

func (r *ThreadRepository) Insert(ctx context.Context, thread *domain.Thread) (*domain.Thread, error) {
	authorID, err := primitive.ObjectIDFromHex(thread.AuthorID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	doc := threadDoc{
		Title:          thread.Title,
		InitialMessage: thread.InitialMessage,
		Published:      thread.Published,
		AuthorID:       authorID,
		AuthorUsername: thread.AuthorUsername,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert thread: %w", err)
	}

	created := *thread
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ThreadRepository) FindByID(ctx context.Context, id string) (*domain.Thread, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrThreadNotFound
	}

	var doc threadDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrThreadNotFound
		}
		return nil, fmt.Errorf("find thread: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ThreadRepository) FindAll(ctx context.Context) ([]domain.Thread, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "published", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	defer cur.Close(ctx)

	var threads []domain.Thread
	for cur.Next(ctx) {
		var doc threadDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode thread: %w", err)
		}
		threads = append(threads, *doc.toDomain())
	}
	return threads, cur.Err()
}

func (r *ThreadRepository) FindIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	oid, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	cur, err := r.coll.Find(ctx, bson.M{"author_id": oid},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("find thread ids: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode thread id: %w", err)
		}
		ids = append(ids, doc.ID.Hex())
	}
	return ids, cur.Err()
}

func (r *ThreadRepository) Update(ctx context.Context, id, title, initialMessage string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrThreadNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"title":           title,
		"initial_message": initialMessage,
	}})
	if err != nil {
		return fmt.Errorf("update thread: %w", err)
	}
	// Zero matches means the thread was deleted between the caller's read
	// and this write.
	if res.MatchedCount == 0 {
		return domain.ErrThreadNotFound
	}
	return nil
}

func (r *ThreadRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrThreadNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete thread: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrThreadNotFound
	}
	return nil
}

func (r *ThreadRepository) DeleteByAuthor(ctx context.Context, authorID string) error {
	oid, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	if _, err := r.coll.DeleteMany(ctx, bson.M{"author_id": oid}); err != nil {
		return fmt.Errorf("delete threads by author: %w", err)
	}
	return nil
}

func (r *ThreadRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
		{Keys: bson.D{{Key: "published", Value: -1}}},
	})
	return err
}
