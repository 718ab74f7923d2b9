package ports

import (
	"context"

	"github.com/yamacbayin/blog-admin-panel/internal/core/domain"
)

// Server-side persistence ports. ListDtos computes the denormalized view
// records (counters and names) at read time; the stored documents only ever
// hold canonical fields.

type UserRepository interface {
	ListDtos(ctx context.Context) ([]domain.UserDto, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type CategoryRepository interface {
	ListDtos(ctx context.Context) ([]domain.CategoryDto, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int) (*domain.Category, error)
}

type PostRepository interface {
	ListDtos(ctx context.Context) ([]domain.PostDto, error)
	Create(ctx context.Context, post *domain.Post) error
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id int) (*domain.Post, error)
	CountByUser(ctx context.Context, userID int) (int64, error)
	CountByCategory(ctx context.Context, categoryID int) (int64, error)
}

type CommentRepository interface {
	ListDtos(ctx context.Context) ([]domain.CommentDto, error)
	Create(ctx context.Context, comment *domain.Comment) error
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id int) (*domain.Comment, error)
	CountByUser(ctx context.Context, userID int) (int64, error)
	CountByPost(ctx context.Context, postID int) (int64, error)
}
