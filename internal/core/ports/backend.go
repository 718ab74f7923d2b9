package ports

import "github.com/yamacbayin/blog-admin-panel/internal/core/domain"

// Backend is the full remote API surface the panel consumes: one resource
// collection per entity.
type Backend interface {
	Users() Collection[domain.User, domain.UserDto]
	Categories() Collection[domain.Category, domain.CategoryDto]
	Posts() Collection[domain.Post, domain.PostDto]
	Comments() Collection[domain.Comment, domain.CommentDto]
}
