package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yamacbayin/blog-admin-panel/internal/core/domain"
)

const collectionComments = "comments"

type CommentRepository struct {
	col      *mongo.Collection
	counters *Counters
}

func NewCommentRepository(db *mongo.Database, counters *Counters) *CommentRepository {
	return &CommentRepository{col: db.Collection(collectionComments), counters: counters}
}

// ListDtos returns every comment enriched with the author's username and the
// post's title, computed at read time.
func (r *CommentRepository) ListDtos(ctx context.Context) ([]domain.CommentDto, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{}
	pipeline = append(pipeline, nameStages(collectionUsers, "user_id", "username", "username")...)
	pipeline = append(pipeline, nameStages(collectionPosts, "post_id", "title", "post_title")...)
	pipeline = append(pipeline, sortStage("comment_id"))

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	dtos := []domain.CommentDto{}
	if err := cur.All(ctx, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.counters.Next(ctx, "comment_id")
	if err != nil {
		return err
	}
	comment.ID = id
	comment.CreationDate = time.Now().UTC()

	_, err = r.col.InsertOne(ctx, comment)
	return err
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"comment_id": comment.ID}, comment)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var comment domain.Comment
	err := r.col.FindOneAndDelete(ctx, bson.M{"comment_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// CountByUser returns how many comments the given user has written.
func (r *CommentRepository) CountByUser(ctx context.Context, userID int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"user_id": userID})
}

// CountByPost returns how many comments the given post has.
func (r *CommentRepository) CountByPost(ctx context.Context, postID int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"post_id": postID})
}

func (r *CommentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "comment_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "post_id", Value: 1}}},
	})
	return err
}
