package store

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/yamacbayin/blog-admin-panel/internal/core/domain"
	"github.com/yamacbayin/blog-admin-panel/internal/core/mapping"
	"github.com/yamacbayin/blog-admin-panel/internal/core/ports"
	"github.com/yamacbayin/blog-admin-panel/internal/panel/alert"
)

// PostStore caches the post collection and owns every post write.
type PostStore struct {
	*Store[domain.Post, domain.PostDto]
}

func NewPostStore(api ports.Collection[domain.Post, domain.PostDto], alerts *alert.Notifier, log zerolog.Logger) *PostStore {
	return &PostStore{newStore(api, alerts, log, hooks[domain.Post, domain.PostDto]{
		entity:  "post",
		id:      func(d domain.PostDto) int { return d.ID },
		label:   func(d domain.PostDto) string { return d.Title },
		fromDto: mapping.PostFromDto,
		toDto:   mapping.PostToDto,
		trim: func(p domain.Post) domain.Post {
			p.Title = strings.TrimSpace(p.Title)
			p.Content = strings.TrimSpace(p.Content)
			return p
		},
		carryOver: func(draft, returned domain.PostDto) domain.PostDto {
			returned.Username = draft.Username
			returned.CategoryName = draft.CategoryName
			returned.CommentCount = draft.CommentCount
			return returned
		},
		deleteGuard: func(target domain.PostDto, _ int) string {
			if target.CommentCount > 0 {
				return "Posts with comments cannot be deleted."
			}
			return ""
		},
		foreignKeys: map[string]func(domain.PostDto) int{
			"user_id":     func(d domain.PostDto) int { return d.UserID },
			"category_id": func(d domain.PostDto) int { return d.CategoryID },
		},
	})}
}

// FindAllByUserID returns the cached posts written by the given author.
func (s *PostStore) FindAllByUserID(id int) []domain.PostDto {
	return s.FindAllByForeignKey("user_id", id)
}

// FindAllByCategoryID returns the cached posts filed under the given category.
func (s *PostStore) FindAllByCategoryID(id int) []domain.PostDto {
	return s.FindAllByForeignKey("category_id", id)
}

// SelectOptions projects the current snapshot into post picker options.
func (s *PostStore) SelectOptions() []domain.SelectOption {
	snapshot := s.Snapshot()
	options := make([]domain.SelectOption, len(snapshot))
	for i, dto := range snapshot {
		options[i] = mapping.PostToSelect(dto)
	}
	return options
}
