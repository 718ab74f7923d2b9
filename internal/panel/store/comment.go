package store

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/yamacbayin/blog-admin-panel/internal/core/domain"
	"github.com/yamacbayin/blog-admin-panel/internal/core/mapping"
	"github.com/yamacbayin/blog-admin-panel/internal/core/ports"
	"github.com/yamacbayin/blog-admin-panel/internal/panel/alert"
)

// CommentStore caches the comment collection and owns every comment write.
// Comments have no dependent children, so deletes carry no business rule.
type CommentStore struct {
	*Store[domain.Comment, domain.CommentDto]
}

func NewCommentStore(api ports.Collection[domain.Comment, domain.CommentDto], alerts *alert.Notifier, log zerolog.Logger) *CommentStore {
	return &CommentStore{newStore(api, alerts, log, hooks[domain.Comment, domain.CommentDto]{
		entity:  "comment",
		id:      func(d domain.CommentDto) int { return d.ID },
		label:   func(d domain.CommentDto) string { return d.Text },
		fromDto: mapping.CommentFromDto,
		toDto:   mapping.CommentToDto,
		trim: func(c domain.Comment) domain.Comment {
			c.Text = strings.TrimSpace(c.Text)
			return c
		},
		carryOver: func(draft, returned domain.CommentDto) domain.CommentDto {
			returned.Username = draft.Username
			returned.PostTitle = draft.PostTitle
			return returned
		},
		foreignKeys: map[string]func(domain.CommentDto) int{
			"user_id": func(d domain.CommentDto) int { return d.UserID },
			"post_id": func(d domain.CommentDto) int { return d.PostID },
		},
	})}
}

// FindAllByUserID returns the cached comments written by the given author.
func (s *CommentStore) FindAllByUserID(id int) []domain.CommentDto {
	return s.FindAllByForeignKey("user_id", id)
}

// FindAllByPostID returns the cached comments under the given post.
func (s *CommentStore) FindAllByPostID(id int) []domain.CommentDto {
	return s.FindAllByForeignKey("post_id", id)
}
