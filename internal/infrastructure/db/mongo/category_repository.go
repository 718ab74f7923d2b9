package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yamacbayin/blog-admin-panel/internal/core/domain"
)

const collectionCategories = "categories"

type CategoryRepository struct {
	col      *mongo.Collection
	counters *Counters
}

func NewCategoryRepository(db *mongo.Database, counters *Counters) *CategoryRepository {
	return &CategoryRepository{col: db.Collection(collectionCategories), counters: counters}
}

// ListDtos returns every category with post_count computed at read time.
func (r *CategoryRepository) ListDtos(ctx context.Context) ([]domain.CategoryDto, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{}
	pipeline = append(pipeline, countStages(collectionPosts, "category_id", "post_count")...)
	pipeline = append(pipeline, sortStage("category_id"))

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	dtos := []domain.CategoryDto{}
	if err := cur.All(ctx, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.counters.Next(ctx, "category_id")
	if err != nil {
		return err
	}
	category.ID = id
	category.CreationDate = time.Now().UTC()

	_, err = r.col.InsertOne(ctx, category)
	return err
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"category_id": category.ID}, category)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var category domain.Category
	err := r.col.FindOneAndDelete(ctx, bson.M{"category_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
	})
	return err
}
