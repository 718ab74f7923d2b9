package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yamacbayin/blog-admin-panel/internal/core/domain"
)

const collectionPosts = "posts"

type PostRepository struct {
	col      *mongo.Collection
	counters *Counters
}

func NewPostRepository(db *mongo.Database, counters *Counters) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts), counters: counters}
}

// ListDtos returns every post enriched with the author's username, the
// category's name, and the comment count, all computed at read time.
func (r *PostRepository) ListDtos(ctx context.Context) ([]domain.PostDto, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{}
	pipeline = append(pipeline, nameStages(collectionUsers, "user_id", "username", "username")...)
	pipeline = append(pipeline, nameStages(collectionCategories, "category_id", "name", "category_name")...)
	pipeline = append(pipeline, countStages(collectionComments, "post_id", "comment_count")...)
	pipeline = append(pipeline, sortStage("post_id"))

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	dtos := []domain.PostDto{}
	if err := cur.All(ctx, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.counters.Next(ctx, "post_id")
	if err != nil {
		return err
	}
	post.ID = id
	post.CreationDate = time.Now().UTC()

	_, err = r.col.InsertOne(ctx, post)
	return err
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"post_id": post.ID}, post)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var post domain.Post
	err := r.col.FindOneAndDelete(ctx, bson.M{"post_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// CountByUser returns how many posts the given user has written.
func (r *PostRepository) CountByUser(ctx context.Context, userID int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"user_id": userID})
}

// CountByCategory returns how many posts are filed under the given category.
func (r *PostRepository) CountByCategory(ctx context.Context, categoryID int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"category_id": categoryID})
}

func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "post_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
	})
	return err
}
