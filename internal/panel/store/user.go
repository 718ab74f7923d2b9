package store

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/yamacbayin/blog-admin-panel/internal/core/domain"
	"github.com/yamacbayin/blog-admin-panel/internal/core/mapping"
	"github.com/yamacbayin/blog-admin-panel/internal/core/ports"
	"github.com/yamacbayin/blog-admin-panel/internal/panel/alert"
)

// UserStore caches the user collection and owns every user write.
type UserStore struct {
	*Store[domain.User, domain.UserDto]
}

func NewUserStore(api ports.Collection[domain.User, domain.UserDto], alerts *alert.Notifier, log zerolog.Logger) *UserStore {
	return &UserStore{newStore(api, alerts, log, hooks[domain.User, domain.UserDto]{
		entity:  "user",
		id:      func(d domain.UserDto) int { return d.ID },
		label:   func(d domain.UserDto) string { return d.Username },
		fromDto: mapping.UserFromDto,
		toDto:   mapping.UserToDto,
		trim: func(u domain.User) domain.User {
			u.Username = strings.TrimSpace(u.Username)
			u.Email = strings.TrimSpace(u.Email)
			return u
		},
		carryOver: func(draft, returned domain.UserDto) domain.UserDto {
			returned.PostCount = draft.PostCount
			returned.CommentCount = draft.CommentCount
			return returned
		},
		deleteGuard: func(target domain.UserDto, listLen int) string {
			if listLen == 1 {
				return "The last user cannot be deleted."
			}
			if target.PostCount > 0 {
				return "Users with posts cannot be deleted."
			}
			if target.CommentCount > 0 {
				return "Users with comments cannot be deleted."
			}
			return ""
		},
	})}
}

// SelectOptions projects the current snapshot into author picker options.
func (s *UserStore) SelectOptions() []domain.SelectOption {
	snapshot := s.Snapshot()
	options := make([]domain.SelectOption, len(snapshot))
	for i, dto := range snapshot {
		options[i] = mapping.UserToSelect(dto)
	}
	return options
}
