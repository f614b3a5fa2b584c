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

const collectionPosts = "posts"

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(collectionPosts)}
}

type postDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ThreadID       primitive.ObjectID `bson:"thread_id"`
	Message        string             `bson:"message"`
	Published      time.Time          `bson:"published"`
	AuthorID       primitive.ObjectID `bson:"author_id"`
	AuthorUsername string             `bson:"author_username"`
}

func (d postDoc) toDomain() *domain.Post {
	return &domain.Post{
		ID:             d.ID.Hex(),
		ThreadID:       d.ThreadID.Hex(),
		Message:        d.Message,
		Published:      d.Published.UTC(),
		AuthorID:       d.AuthorID.Hex(),
		AuthorUsername: d.AuthorUsername,
	}
}

func (r *PostRepository) Insert(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	threadID, err := primitive.ObjectIDFromHex(post.ThreadID)
	if err != nil {
		return nil, domain.ErrThreadNotFound
	}
	authorID, err := primitive.ObjectIDFromHex(post.AuthorID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	doc := postDoc{
		ThreadID:       threadID,
		Message:        post.Message,
		Published:      post.Published,
		AuthorID:       authorID,
		AuthorUsername: post.AuthorUsername,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	created := *post
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	var doc postDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) FindByThread(ctx context.Context, threadID string, offset, limit int) ([]domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(threadID)
	if err != nil {
		return nil, domain.ErrThreadNotFound
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "published", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"thread_id": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []domain.Post
	for cur.Next(ctx) {
		var doc postDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, *doc.toDomain())
	}
	return posts, cur.Err()
}

func (r *PostRepository) CountByThread(ctx context.Context, threadID string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(threadID)
	if err != nil {
		return 0, nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"thread_id": oid})
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return int(n), nil
}

func (r *PostRepository) Update(ctx context.Context, id, message string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"message": message}})
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) DeleteByThread(ctx context.Context, threadID string) error {
	oid, err := primitive.ObjectIDFromHex(threadID)
	if err != nil {
		return domain.ErrThreadNotFound
	}

	if _, err := r.coll.DeleteMany(ctx, bson.M{"thread_id": oid}); err != nil {
		return fmt.Errorf("delete posts by thread: %w", err)
	}
	return nil
}

func (r *PostRepository) DeleteByAuthorOrThreads(ctx context.Context, authorID string, threadIDs []string) error {
	authorOID, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	threadOIDs := make([]primitive.ObjectID, 0, len(threadIDs))
	for _, id := range threadIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		threadOIDs = append(threadOIDs, oid)
	}

	filter := bson.M{"$or": bson.A{
		bson.M{"author_id": authorOID},
		bson.M{"thread_id": bson.M{"$in": threadOIDs}},
	}}

	if _, err := r.coll.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("delete posts for ban: %w", err)
	}
	return nil
}

func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "thread_id", Value: 1}, {Key: "published", Value: -1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	})
	return err
}
