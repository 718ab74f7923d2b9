package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yamacbayin/blog-admin-panel/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col      *mongo.Collection
	counters *Counters
}

func NewUserRepository(db *mongo.Database, counters *Counters) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers), counters: counters}
}

// ListDtos returns every user with post_count and comment_count computed at
// read time. The counters are never stored on the user documents.
func (r *UserRepository) ListDtos(ctx context.Context) ([]domain.UserDto, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{}
	pipeline = append(pipeline, countStages(collectionPosts, "user_id", "post_count")...)
	pipeline = append(pipeline, countStages(collectionComments, "user_id", "comment_count")...)
	pipeline = append(pipeline, sortStage("user_id"))

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	dtos := []domain.UserDto{}
	if err := cur.All(ctx, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}

// Create inserts a new user, assigning its id and creation timestamp.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.counters.Next(ctx, "user_id")
	if err != nil {
		return err
	}
	user.ID = id
	user.CreationDate = time.Now().UTC()

	_, err = r.col.InsertOne(ctx, user)
	return err
}

// Update replaces the stored user matching the record's id.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"user_id": user.ID}, user)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes a user by id and returns the deleted record.
func (r *UserRepository) Delete(ctx context.Context, id int) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var user domain.User
	err := r.col.FindOneAndDelete(ctx, bson.M{"user_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the indexes the user queries rely on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	})
	return err
}
